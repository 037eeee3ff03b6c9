package service

import (
	"math"

	"github.com/noah-isme/academic-records-api/internal/models"
)

// gradePoints is the single authoritative grade table. The legacy system
// re-declared it at three call sites (manual edit, grade import, enrollment
// import); every path here goes through this map and DeriveState.
var gradePoints = map[string]float64{
	"A":                  4.0,
	"A-":                 3.7,
	"B+":                 3.3,
	"B":                  3.0,
	"B-":                 2.7,
	"C+":                 2.3,
	"C":                  2.0,
	"F":                  0.0,
	models.GradeUngraded: 0.0,
}

// GradePoints returns the points for a grade; unrecognised strings map to 0.
func GradePoints(grade string) float64 {
	return gradePoints[grade]
}

// DeriveState maps a grade onto the (gpa, status, progress) triple. The
// rule is two-branch: ungraded means Registered at 0%, any other grade
// (F included) means Completed at 100%. A grade update can therefore never
// produce In Progress; that state only enters through enrollment creation
// with an explicit status. The record system behaves this way and the
// behaviour is kept as-is.
func DeriveState(grade string) models.DerivedState {
	if grade == models.GradeUngraded {
		return models.DerivedState{GPAPoints: 0, Status: models.StatusRegistered, ProgressPercent: 0}
	}
	return models.DerivedState{GPAPoints: GradePoints(grade), Status: models.StatusCompleted, ProgressPercent: 100}
}

// ProgressForStatus maps an explicitly supplied enrollment status to its
// progress percentage. Only the enrollment-creation paths use this.
func ProgressForStatus(status models.EnrollmentStatus) int {
	switch status {
	case models.StatusCompleted:
		return 100
	case models.StatusInProgress:
		return 50
	default:
		return 0
	}
}

// ComputeGPA returns the credit-weighted GPA over completed enrollments
// with positive grade points, rounded to two decimals. Completed courses
// graded F carry zero points and are excluded from numerator and
// denominator both, so a failed course does not lower the average. That
// matches the observed behaviour of the system being replaced; changing it
// is a reviewed behaviour change, not a cleanup.
func ComputeGPA(enrollments []models.Enrollment) float64 {
	var credits int
	var points float64
	for _, e := range enrollments {
		if e.Status != models.StatusCompleted || e.GPAPoints <= 0 {
			continue
		}
		credits += e.Credits
		points += float64(e.Credits) * e.GPAPoints
	}
	if credits == 0 {
		return 0
	}
	return math.Round(points/float64(credits)*100) / 100
}
