package models

// GradeHistoryRecord is one semester's GPA snapshot. The history is
// append-only and never recomputed from the live enrollment list.
type GradeHistoryRecord struct {
	Semester string  `json:"semester"`
	GPA      float64 `json:"gpa"`
}

// Participant is a student record. It owns its enrollment list and grade
// history; both are embedded rather than referenced so a participant
// delete cascades with nothing left to clean up.
//
// Password is stored in plain text to stay interoperable with the demo
// system this service replaces. Credential hardening is out of scope.
type Participant struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Password     string               `json:"password"`
	Program      string               `json:"program"`
	Year         string               `json:"year"`
	Semester     string               `json:"semester"`
	Avatar       string               `json:"avatar"`
	Parish       string               `json:"parish"`
	Deanery      string               `json:"deanery"`
	Phone        string               `json:"phone"`
	Enrollments  []Enrollment         `json:"courses"`
	GradeHistory []GradeHistoryRecord `json:"gradeHistory"`
}

// Clone returns a deep copy so store readers never share slices with the
// authoritative record.
func (p Participant) Clone() Participant {
	out := p
	if p.Enrollments != nil {
		out.Enrollments = make([]Enrollment, len(p.Enrollments))
		copy(out.Enrollments, p.Enrollments)
	}
	if p.GradeHistory != nil {
		out.GradeHistory = make([]GradeHistoryRecord, len(p.GradeHistory))
		copy(out.GradeHistory, p.GradeHistory)
	}
	return out
}

// FindEnrollment returns the index of the enrollment for courseID, or -1.
func (p Participant) FindEnrollment(courseID string) int {
	for i, e := range p.Enrollments {
		if e.CourseID == courseID {
			return i
		}
	}
	return -1
}

// ParticipantUpdate carries the mutable scalar fields of a participant.
// Enrollments and grade history are owned lists and must be mutated through
// the enrollment service, never replaced wholesale here.
type ParticipantUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Program  *string `json:"program,omitempty"`
	Year     *string `json:"year,omitempty"`
	Semester *string `json:"semester,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Parish   *string `json:"parish,omitempty"`
	Deanery  *string `json:"deanery,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}
