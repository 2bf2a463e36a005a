package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// Request is the aggregate for support requests.
type Request struct {
	ID            int64
	ProblemTypeID int64
	SpecialistID  *int64
	StatusID      int64
	Description   string
	SentAt        time.Time
	AcceptedAt    *time.Time
	CompletedAt   *time.Time
}

// StatusUpdate is a partial rewrite of a request. Nil fields keep their stored value.
type StatusUpdate struct {
	StatusID    int64
	Description *string
	AcceptedAt  *time.Time
	CompletedAt *time.Time
}

// ApplyStatusUpdate merges u into r and checks that the resulting timestamps
// agree with the target stage. r is left untouched when an error is returned.
//
// A request moving to InProgress without an accepted time is stamped with now,
// and one moving to Completed without a completion time likewise.
func (r *Request) ApplyStatusUpdate(u StatusUpdate, stage StatusStage, now time.Time) error {
	next := *r
	next.StatusID = u.StatusID
	if u.Description != nil {
		next.Description = strings.TrimSpace(*u.Description)
	}
	if u.AcceptedAt != nil {
		accepted := *u.AcceptedAt
		next.AcceptedAt = &accepted
	}
	if u.CompletedAt != nil {
		completed := *u.CompletedAt
		next.CompletedAt = &completed
	}

	switch stage {
	case StageSubmitted:
		if next.AcceptedAt != nil || next.CompletedAt != nil {
			return incoherent("submitted request cannot carry accepted or completed time", stage)
		}
	case StageInProgress:
		if next.CompletedAt != nil {
			return incoherent("request in progress cannot carry a completed time", stage)
		}
		if next.AcceptedAt == nil {
			stamp := now
			next.AcceptedAt = &stamp
		}
	case StageCompleted:
		if next.CompletedAt == nil {
			stamp := now
			next.CompletedAt = &stamp
		}
	default:
		if next.CompletedAt != nil {
			return incoherent("only completed requests carry a completed time", stage)
		}
	}

	if err := next.checkOrdering(); err != nil {
		return err
	}
	*r = next
	return nil
}

func (r *Request) checkOrdering() error {
	if r.AcceptedAt != nil && r.AcceptedAt.Before(r.SentAt) {
		return apperrors.NewValidationError("accepted time precedes sent time", map[string]any{
			"sent_at":     r.SentAt,
			"accepted_at": *r.AcceptedAt,
		})
	}
	if r.CompletedAt != nil && r.CompletedAt.Before(r.SentAt) {
		return apperrors.NewValidationError("completed time precedes sent time", map[string]any{
			"sent_at":      r.SentAt,
			"completed_at": *r.CompletedAt,
		})
	}
	if r.AcceptedAt != nil && r.CompletedAt != nil && r.CompletedAt.Before(*r.AcceptedAt) {
		return apperrors.NewValidationError("completed time precedes accepted time", map[string]any{
			"accepted_at":  *r.AcceptedAt,
			"completed_at": *r.CompletedAt,
		})
	}
	return nil
}

func incoherent(message string, stage StatusStage) error {
	return apperrors.NewValidationError(message, map[string]any{"stage": stage.String()})
}
