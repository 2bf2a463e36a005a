package dto

// CreateSpecialistRequest payload.
type CreateSpecialistRequest struct {
	JobTitleID int64  `json:"job_title_id"`
	Name       string `json:"name"`
	Number     string `json:"number"`
	Mail       string `json:"mail"`
	Login      string `json:"login"`
	Password   string `json:"password"`
}

// SpecialistResponse omits credentials.
type SpecialistResponse struct {
	ID         int64  `json:"id"`
	JobTitleID int64  `json:"job_title_id"`
	Name       string `json:"name"`
	Number     string `json:"number"`
	Mail       string `json:"mail"`
	Login      string `json:"login"`
}

// SpecialistJobTitleResponse names the specialist's job title.
type SpecialistJobTitleResponse struct {
	SpecialistID int64  `json:"specialist_id"`
	JobTitle     string `json:"job_title"`
}
