package dto

// OfficeRequest payload. Number is ignored on update.
type OfficeRequest struct {
	Number  int64  `json:"number"`
	Name    string `json:"name"`
	Housing string `json:"housing"`
	Floor   *int32 `json:"floor"`
}

// OfficeResponse represents an office.
type OfficeResponse struct {
	Number  int64  `json:"number"`
	Name    string `json:"name"`
	Housing string `json:"housing"`
	Floor   *int32 `json:"floor"`
}

// WorkerRequest payload.
type WorkerRequest struct {
	Name         string `json:"name"`
	Number       string `json:"number"`
	DepartmentID *int64 `json:"department_id"`
}

// WorkerResponse represents a worker with the joined department name.
type WorkerResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Number         string  `json:"number"`
	DepartmentID   *int64  `json:"department_id"`
	DepartmentName *string `json:"department_name"`
}
