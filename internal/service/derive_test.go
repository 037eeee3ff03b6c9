package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/academic-records-api/internal/models"
)

func TestGradePointsTable(t *testing.T) {
	expected := map[string]float64{
		"A":  4.0,
		"A-": 3.7,
		"B+": 3.3,
		"B":  3.0,
		"B-": 2.7,
		"C+": 2.3,
		"C":  2.0,
		"F":  0.0,
		"-":  0.0,
	}
	for grade, points := range expected {
		assert.Equal(t, points, GradePoints(grade), "grade %s", grade)
	}
	assert.Equal(t, 0.0, GradePoints("Z"))
	assert.Equal(t, 0.0, GradePoints(""))
}

func TestDeriveStateUngraded(t *testing.T) {
	derived := DeriveState(models.GradeUngraded)
	assert.Equal(t, models.StatusRegistered, derived.Status)
	assert.Equal(t, 0.0, derived.GPAPoints)
	assert.Equal(t, 0, derived.ProgressPercent)
}

func TestDeriveStateGraded(t *testing.T) {
	derived := DeriveState("B+")
	assert.Equal(t, models.StatusCompleted, derived.Status)
	assert.Equal(t, 3.3, derived.GPAPoints)
	assert.Equal(t, 100, derived.ProgressPercent)
}

func TestDeriveStateFailingGradeCompletes(t *testing.T) {
	// F is a grade, so the enrollment counts as completed at full progress
	// even though it earns zero points.
	derived := DeriveState("F")
	assert.Equal(t, models.StatusCompleted, derived.Status)
	assert.Equal(t, 0.0, derived.GPAPoints)
	assert.Equal(t, 100, derived.ProgressPercent)
}

func TestProgressForStatus(t *testing.T) {
	assert.Equal(t, 100, ProgressForStatus(models.StatusCompleted))
	assert.Equal(t, 50, ProgressForStatus(models.StatusInProgress))
	assert.Equal(t, 0, ProgressForStatus(models.StatusRegistered))
	assert.Equal(t, 0, ProgressForStatus(models.EnrollmentStatus("Unknown")))
}

func TestComputeGPAWeightsByCredits(t *testing.T) {
	gpa := ComputeGPA([]models.Enrollment{
		{Credits: 4, GPAPoints: 4.0, Status: models.StatusCompleted},
		{Credits: 2, GPAPoints: 3.0, Status: models.StatusCompleted},
	})
	// (4*4.0 + 2*3.0) / 6 = 3.666... -> 3.67
	assert.Equal(t, 3.67, gpa)
}

func TestComputeGPAExcludesNonCompleted(t *testing.T) {
	gpa := ComputeGPA([]models.Enrollment{
		{Credits: 3, GPAPoints: 4.0, Status: models.StatusCompleted},
		{Credits: 3, GPAPoints: 3.3, Status: models.StatusInProgress},
		{Credits: 3, GPAPoints: 0, Status: models.StatusRegistered},
	})
	assert.Equal(t, 4.0, gpa)
}

func TestComputeGPAExcludesFailedCourses(t *testing.T) {
	// A completed F carries zero points and drops out of both numerator and
	// denominator, so it does not pull the average down.
	with := ComputeGPA([]models.Enrollment{
		{Credits: 3, GPAPoints: 4.0, Status: models.StatusCompleted},
		{Credits: 3, GPAPoints: 0, Status: models.StatusCompleted, Grade: "F"},
	})
	without := ComputeGPA([]models.Enrollment{
		{Credits: 3, GPAPoints: 4.0, Status: models.StatusCompleted},
	})
	assert.Equal(t, without, with)
}

func TestComputeGPAEmpty(t *testing.T) {
	assert.Equal(t, 0.0, ComputeGPA(nil))
	assert.Equal(t, 0.0, ComputeGPA([]models.Enrollment{
		{Credits: 3, GPAPoints: 0, Status: models.StatusCompleted},
	}))
}
