package dto

import "time"

// CreateRequestRequest payload.
type CreateRequestRequest struct {
	ProblemTypeID int64  `json:"problem_type_id"`
	Description   string `json:"description"`
}

// UpdateRequestStatusRequest moves a request to another status. Omitted
// fields keep their stored values.
type UpdateRequestStatusRequest struct {
	StatusID    int64      `json:"status_id"`
	Description *string    `json:"description"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// AssignRequestRequest payload.
type AssignRequestRequest struct {
	SpecialistID int64 `json:"specialist_id"`
}

// RequestResponse represents a support request.
type RequestResponse struct {
	ID            int64      `json:"id"`
	ProblemTypeID int64      `json:"problem_type_id"`
	SpecialistID  *int64     `json:"specialist_id"`
	StatusID      int64      `json:"status_id"`
	Description   string     `json:"description"`
	SentAt        time.Time  `json:"sent_at"`
	AcceptedAt    *time.Time `json:"accepted_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// SpecialistRequestsResponse lists the requests assigned to one specialist.
type SpecialistRequestsResponse struct {
	SpecialistName string            `json:"specialist_name"`
	Requests       []RequestResponse `json:"requests"`
}
