package models

// Pagination describes paging metadata returned alongside list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// ParticipantFilter provides filters for listing participants.
type ParticipantFilter struct {
	Search  string
	Program string
	Deanery string
	Parish  string
}

// CourseFilter provides filters for listing catalog courses.
type CourseFilter struct {
	Search     string
	Department string
}
