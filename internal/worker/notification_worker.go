package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
)

// ErrQueueFull is returned when an event arrives faster than it can be forwarded.
var ErrQueueFull = errors.New("notification queue full")

const defaultQueueSize = 256

// NotificationWorker forwards events to a publisher on its own goroutine so
// request handling never waits on the broker.
type NotificationWorker struct {
	publisher events.Publisher
	logger    *zap.Logger
	queue     chan events.Event
	wg        sync.WaitGroup
}

// NewNotificationWorker builds a worker with a queue of size events.
func NewNotificationWorker(publisher events.Publisher, logger *zap.Logger, size int) *NotificationWorker {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &NotificationWorker{
		publisher: publisher,
		logger:    logger,
		queue:     make(chan events.Event, size),
	}
}

// Forward queues event for delivery. It satisfies events.Publisher.
func (w *NotificationWorker) Forward(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("dropping event", zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))
		return ErrQueueFull
	}
}

// Start delivers queued events until ctx is cancelled, then drains what is left.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event := <-w.queue:
				w.deliver(ctx, event)
			case <-ctx.Done():
				w.drain()
				return
			}
		}
	}()
}

// Wait blocks until the delivery goroutine has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	if err := w.publisher.Forward(ctx, event); err != nil {
		w.logger.Warn("deliver event", zap.String("event_id", event.ID), zap.Error(err))
	}
}
