package domain

// MonthlyAverage is the mean duration in hours for one calendar month.
type MonthlyAverage struct {
	Month        int
	AverageHours float64
	Requests     int
}

// ProblemTypeCount counts requests filed under one problem type.
type ProblemTypeCount struct {
	ProblemType  string
	RequestCount int64
}

// MonthlyStatusCount buckets requests by the month they were sent.
type MonthlyStatusCount struct {
	Year       int
	Month      int
	Submitted  int64
	InProgress int64
	Completed  int64
}
