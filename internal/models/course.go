package models

// Course is a catalog entry. The ID is immutable once created; editing a
// course never touches enrollments that already snapshotted it.
type Course struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Credits    int    `json:"credits"`
	Department string `json:"department"`
}

// CourseUpdate carries the mutable fields of a catalog entry. Nil fields
// are left untouched.
type CourseUpdate struct {
	Name       *string `json:"name,omitempty"`
	Credits    *int    `json:"credits,omitempty"`
	Department *string `json:"department,omitempty"`
}
