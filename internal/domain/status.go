package domain

import (
	"strings"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// StatusStage is the closed lifecycle vocabulary a status id resolves to.
type StatusStage int

const (
	StageOther StatusStage = iota
	StageSubmitted
	StageInProgress
	StageCompleted
)

// Canonical status names as stored in the status table.
const (
	StatusNameSubmitted  = "На принятии"
	StatusNameInProgress = "В работе"
	StatusNameCompleted  = "Выполнена"
)

func (s StatusStage) String() string {
	switch s {
	case StageSubmitted:
		return "SUBMITTED"
	case StageInProgress:
		return "IN_PROGRESS"
	case StageCompleted:
		return "COMPLETED"
	default:
		return "OTHER"
	}
}

// CanonicalName returns the stored name for a canonical stage.
func (s StatusStage) CanonicalName() string {
	switch s {
	case StageSubmitted:
		return StatusNameSubmitted
	case StageInProgress:
		return StatusNameInProgress
	case StageCompleted:
		return StatusNameCompleted
	default:
		return ""
	}
}

// StatusSet maps the canonical stages to their status ids. It is resolved once
// at startup and is read-only afterwards.
type StatusSet struct {
	submitted  int64
	inProgress int64
	completed  int64
}

// NewStatusSet resolves the canonical stages from the status catalog.
func NewStatusSet(entries []CatalogEntry) (*StatusSet, error) {
	byName := make(map[string]int64, len(entries))
	for _, entry := range entries {
		byName[strings.TrimSpace(entry.Name)] = entry.ID
	}

	set := &StatusSet{}
	var missing []string
	for _, stage := range []StatusStage{StageSubmitted, StageInProgress, StageCompleted} {
		id, ok := byName[stage.CanonicalName()]
		if !ok {
			missing = append(missing, stage.CanonicalName())
			continue
		}
		switch stage {
		case StageSubmitted:
			set.submitted = id
		case StageInProgress:
			set.inProgress = id
		case StageCompleted:
			set.completed = id
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewConfigurationError("canonical status missing from catalog", map[string]any{"missing": missing})
	}
	return set, nil
}

// MustStatusSet builds a set from explicit ids.
func MustStatusSet(submitted, inProgress, completed int64) *StatusSet {
	return &StatusSet{submitted: submitted, inProgress: inProgress, completed: completed}
}

// ID returns the status id of a canonical stage, or 0 for StageOther.
func (s *StatusSet) ID(stage StatusStage) int64 {
	switch stage {
	case StageSubmitted:
		return s.submitted
	case StageInProgress:
		return s.inProgress
	case StageCompleted:
		return s.completed
	default:
		return 0
	}
}

// Stage resolves a status id to its lifecycle stage.
func (s *StatusSet) Stage(statusID int64) StatusStage {
	switch statusID {
	case s.submitted:
		return StageSubmitted
	case s.inProgress:
		return StageInProgress
	case s.completed:
		return StageCompleted
	default:
		return StageOther
	}
}

// IsCanonical reports whether the status id backs one of the three stages.
func (s *StatusSet) IsCanonical(statusID int64) bool {
	return s.Stage(statusID) != StageOther
}
