package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Forward(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) ids() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.events))
	for _, e := range p.events {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestWorkerDeliversQueuedEventsBeforeExit(t *testing.T) {
	pub := &recordingPublisher{}
	w := NewNotificationWorker(pub, zap.NewNop(), 4)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Forward(ctx, events.Event{ID: "a"}))
	require.NoError(t, w.Forward(ctx, events.Event{ID: "b"}))

	w.Start(ctx)
	cancel()
	w.Wait()

	assert.Equal(t, []string{"a", "b"}, pub.ids())
}

func TestWorkerRejectsWhenQueueFull(t *testing.T) {
	w := NewNotificationWorker(&recordingPublisher{}, zap.NewNop(), 1)

	require.NoError(t, w.Forward(context.Background(), events.Event{ID: "a"}))
	assert.ErrorIs(t, w.Forward(context.Background(), events.Event{ID: "b"}), ErrQueueFull)
}
