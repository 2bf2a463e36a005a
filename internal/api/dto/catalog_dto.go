package dto

// CatalogEntryRequest creates or renames a catalog entry.
type CatalogEntryRequest struct {
	Name string `json:"name"`
}

// CatalogEntryResponse is a single id/name pair.
type CatalogEntryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CatalogLookupResponse answers a name lookup.
type CatalogLookupResponse struct {
	ID int64 `json:"id"`
}

// JobProblemRequest payload for creating or updating a pair.
type JobProblemRequest struct {
	JobTitle    string `json:"job_title"`
	ProblemType string `json:"problem_type"`
}

// JobProblemResponse describes a job title / problem type pair. A half that
// is missing from storage is reported as null.
type JobProblemResponse struct {
	ID          int64                 `json:"id"`
	JobTitle    *CatalogEntryResponse `json:"job_title"`
	ProblemType *CatalogEntryResponse `json:"problem_type"`
}
