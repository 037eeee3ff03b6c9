package models

// Grade values recognised by the derivation rule. Anything else maps to
// zero grade points.
const GradeUngraded = "-"

// EnrollmentStatus reflects where an enrollment sits in its lifecycle.
type EnrollmentStatus string

const (
	StatusRegistered EnrollmentStatus = "Registered"
	StatusInProgress EnrollmentStatus = "In Progress"
	StatusCompleted  EnrollmentStatus = "Completed"
)

// StudyMode is how the participant attends the course.
type StudyMode string

const (
	ModeOnline    StudyMode = "Online"
	ModeSelfStudy StudyMode = "SelfStudy"
	ModePhysical  StudyMode = "Physical"
)

// Enrollment links a participant to a course. Name and Credits are a
// snapshot of the catalog entry taken at enroll time and are deliberately
// never re-synced, so transcripts reflect the course as it was taught.
type Enrollment struct {
	CourseID        string           `json:"courseId"`
	Name            string           `json:"name"`
	Credits         int              `json:"credits"`
	Grade           string           `json:"grade"`
	GPAPoints       float64          `json:"gpa"`
	Status          EnrollmentStatus `json:"status"`
	ProgressPercent int              `json:"progress"`
	Mode            StudyMode        `json:"mode"`
	Semester        string           `json:"semester"`
}

// DerivedState is the output of the grade derivation rule: the only
// legitimate source for an enrollment's (gpa, status, progress) triple.
type DerivedState struct {
	GPAPoints       float64          `json:"gpa"`
	Status          EnrollmentStatus `json:"status"`
	ProgressPercent int              `json:"progress"`
}
