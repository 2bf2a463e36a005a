package domain

// Specialist resolves requests for the problem type paired with its job title.
type Specialist struct {
	ID           int64
	JobTitleID   int64
	Name         string
	Number       string
	Mail         string
	Login        string
	PasswordHash string
}
