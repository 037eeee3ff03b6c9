package models

// ImportKind identifies which entity a tabular import targets.
type ImportKind string

const (
	ImportParticipants ImportKind = "participants"
	ImportCourses      ImportKind = "courses"
	ImportPrograms     ImportKind = "programs"
	ImportEnrollments  ImportKind = "enrollments"
	ImportGrades       ImportKind = "grades"
)

// ImportSummary aggregates the outcome of one bulk import run. Row errors
// never abort the batch; they are collected here with 1-based positions so
// callers can point users at the offending lines.
type ImportSummary struct {
	BatchID  string     `json:"batch_id"`
	Kind     ImportKind `json:"kind"`
	Imported int        `json:"imported"`
	Updated  int        `json:"updated"`
	Errors   int        `json:"errors"`
	Messages []string   `json:"messages"`
}
