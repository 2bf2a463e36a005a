package domain

// JobProblem is a job title and a problem type sharing one id. Either half may
// be nil when the pair is only partially present.
type JobProblem struct {
	ID          int64
	JobTitle    *CatalogEntry
	ProblemType *CatalogEntry
}

// Complete reports whether both halves exist.
func (p JobProblem) Complete() bool {
	return p.JobTitle != nil && p.ProblemType != nil
}
