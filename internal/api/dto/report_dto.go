package dto

// MonthlyAverageResponse is one month of an average-duration report.
type MonthlyAverageResponse struct {
	Month        int     `json:"month"`
	AverageHours float64 `json:"average_hours"`
	Requests     int     `json:"requests"`
}

// ProblemTypeCountResponse counts requests per problem type.
type ProblemTypeCountResponse struct {
	ProblemType  string `json:"problem_type"`
	RequestCount int64  `json:"request_count"`
}

// MonthlyStatusCountResponse counts requests per canonical status in a month.
type MonthlyStatusCountResponse struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	Submitted  int64 `json:"submitted"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}
