// Package seed loads the demo dataset the service ships with. It is only
// applied when SEED_DEMO_DATA is set, and only into empty stores.
package seed

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/store"
)

// Stores is the subset of the storage layer the seeder writes to.
type Stores struct {
	Participants *store.ParticipantStore
	Catalog      *store.CatalogStore
	Programs     *store.ProgramStore
}

// Load inserts the demo catalog, programs and participants. Existing data is
// left untouched so a restart never duplicates records.
func Load(ctx context.Context, s Stores, logr *zap.Logger) error {
	if s.Participants.Len() > 0 || s.Catalog.Len() > 0 || s.Programs.Len() > 0 {
		logr.Info("seed skipped, stores not empty")
		return nil
	}

	for _, course := range demoCourses() {
		if err := s.Catalog.Add(ctx, course); err != nil {
			return err
		}
	}
	for _, program := range demoPrograms() {
		if err := s.Programs.Add(ctx, program); err != nil {
			return err
		}
	}
	for _, participant := range demoParticipants() {
		if err := s.Participants.Add(ctx, participant); err != nil {
			return err
		}
	}

	logr.Info("demo dataset loaded",
		zap.Int("participants", s.Participants.Len()),
		zap.Int("courses", s.Catalog.Len()),
		zap.Int("programs", s.Programs.Len()))
	return nil
}

func demoCourses() []models.Course {
	return []models.Course{
		{ID: "CS101", Name: "Introduction to Computer Science", Credits: 3, Department: "Computer Science"},
		{ID: "CS201", Name: "Object-Oriented Programming", Credits: 4, Department: "Computer Science"},
		{ID: "CS301", Name: "Data Structures & Algorithms", Credits: 4, Department: "Computer Science"},
		{ID: "CS302", Name: "Database Systems", Credits: 3, Department: "Computer Science"},
		{ID: "CS401", Name: "Machine Learning", Credits: 4, Department: "Computer Science"},
		{ID: "CS402", Name: "Software Engineering", Credits: 3, Department: "Computer Science"},
		{ID: "IT201", Name: "Network Fundamentals", Credits: 3, Department: "Information Technology"},
		{ID: "IT202", Name: "Web Development", Credits: 4, Department: "Information Technology"},
		{ID: "IT301", Name: "Cybersecurity", Credits: 3, Department: "Information Technology"},
		{ID: "IT302", Name: "Cloud Computing", Credits: 3, Department: "Information Technology"},
		{ID: "DS401", Name: "Advanced Machine Learning", Credits: 4, Department: "Data Science"},
		{ID: "DS402", Name: "Big Data Analytics", Credits: 3, Department: "Data Science"},
		{ID: "DS403", Name: "Deep Learning", Credits: 4, Department: "Data Science"},
		{ID: "DS404", Name: "Data Visualization", Credits: 3, Department: "Data Science"},
		{ID: "SE101", Name: "Introduction to Programming", Credits: 4, Department: "Software Engineering"},
		{ID: "SE102", Name: "Software Design Principles", Credits: 3, Department: "Software Engineering"},
		{ID: "MATH101", Name: "Calculus I", Credits: 4, Department: "Mathematics"},
		{ID: "MATH301", Name: "Statistics", Credits: 3, Department: "Mathematics"},
		{ID: "ENG101", Name: "Technical Writing", Credits: 3, Department: "English"},
	}
}

func demoPrograms() []models.Program {
	return []models.Program{
		{Name: "Computer Science", Department: "Engineering", DurationYears: 4},
		{Name: "Information Technology", Department: "Engineering", DurationYears: 4},
		{Name: "Data Science", Department: "Engineering", DurationYears: 4},
		{Name: "Software Engineering", Department: "Engineering", DurationYears: 4},
		{Name: "Business Administration", Department: "Business", DurationYears: 4},
		{Name: "Mathematics", Department: "Sciences", DurationYears: 4},
		{Name: "Physics", Department: "Sciences", DurationYears: 4},
		{Name: "English Literature", Department: "Arts", DurationYears: 4},
		{Name: "Certificate Program", Department: "Professional", DurationYears: 0.25},
		{Name: "Diploma Course", Department: "Professional", DurationYears: 0.5},
		{Name: "Foundation Year", Department: "Preparatory", DurationYears: 1},
	}
}

func demoParticipants() []models.Participant {
	const avatar = "/placeholder.svg?height=100&width=100"
	return []models.Participant{
		{
			ID: "ST001", Name: "John Smith", Email: "john.smith@university.edu",
			Password: "john123", Program: "Computer Science", Year: "2025",
			Semester: "1Qtr", Avatar: avatar,
			Enrollments: []models.Enrollment{
				{CourseID: "CS301", Name: "Data Structures & Algorithms", Credits: 4, Grade: "A", GPAPoints: 4.0, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
				{CourseID: "CS302", Name: "Database Systems", Credits: 3, Grade: "A-", GPAPoints: 3.7, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
				{CourseID: "CS401", Name: "Machine Learning", Credits: 4, Grade: "B+", GPAPoints: 3.3, Status: models.StatusInProgress, ProgressPercent: 75, Mode: models.ModePhysical, Semester: "1Qtr"},
				{CourseID: "CS402", Name: "Software Engineering", Credits: 3, Grade: models.GradeUngraded, GPAPoints: 0, Status: models.StatusRegistered, ProgressPercent: 25, Mode: models.ModePhysical, Semester: "1Qtr"},
				{CourseID: "MATH301", Name: "Statistics", Credits: 3, Grade: "A", GPAPoints: 4.0, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
			},
			GradeHistory: []models.GradeHistoryRecord{
				{Semester: "1Qtr", GPA: 3.4},
				{Semester: "2Qtr", GPA: 3.8},
				{Semester: "3Qtr", GPA: 3.5},
			},
		},
		{
			ID: "ST002", Name: "Emily Johnson", Email: "emily.johnson@university.edu",
			Password: "emily456", Program: "Information Technology", Year: "2026",
			Semester: "1Qtr", Avatar: avatar,
			Enrollments: []models.Enrollment{
				{CourseID: "IT201", Name: "Network Fundamentals", Credits: 3, Grade: "A", GPAPoints: 4.0, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
				{CourseID: "IT202", Name: "Web Development", Credits: 4, Grade: "A-", GPAPoints: 3.7, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
				{CourseID: "IT301", Name: "Cybersecurity", Credits: 3, Grade: "B+", GPAPoints: 3.3, Status: models.StatusInProgress, ProgressPercent: 60, Mode: models.ModePhysical, Semester: "1Qtr"},
				{CourseID: "IT302", Name: "Cloud Computing", Credits: 3, Grade: models.GradeUngraded, GPAPoints: 0, Status: models.StatusRegistered, ProgressPercent: 15, Mode: models.ModePhysical, Semester: "1Qtr"},
			},
			GradeHistory: []models.GradeHistoryRecord{
				{Semester: "1Qtr", GPA: 3.6},
				{Semester: "2Qtr", GPA: 3.85},
				{Semester: "3Qtr", GPA: 3.3},
			},
		},
		{
			ID: "ST003", Name: "Michael Brown", Email: "michael.brown@university.edu",
			Password: "mike789", Program: "Data Science", Year: "2025",
			Semester: "1Qtr", Avatar: avatar,
			Enrollments: []models.Enrollment{
				{CourseID: "DS401", Name: "Advanced Machine Learning", Credits: 4, Grade: "A", GPAPoints: 4.0, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
				{CourseID: "DS402", Name: "Big Data Analytics", Credits: 3, Grade: "A", GPAPoints: 4.0, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
				{CourseID: "DS403", Name: "Deep Learning", Credits: 4, Grade: "A-", GPAPoints: 3.7, Status: models.StatusInProgress, ProgressPercent: 80, Mode: models.ModePhysical, Semester: "1Qtr"},
				{CourseID: "DS404", Name: "Data Visualization", Credits: 3, Grade: models.GradeUngraded, GPAPoints: 0, Status: models.StatusRegistered, ProgressPercent: 30, Mode: models.ModePhysical, Semester: "1Qtr"},
			},
			GradeHistory: []models.GradeHistoryRecord{
				{Semester: "1Qtr", GPA: 3.8},
				{Semester: "2Qtr", GPA: 3.9},
				{Semester: "3Qtr", GPA: 3.95},
				{Semester: "4Qtr", GPA: 4.0},
			},
		},
		{
			ID: "ST004", Name: "Sarah Davis", Email: "sarah.davis@university.edu",
			Password: "sarah321", Program: "Software Engineering", Year: "2027",
			Semester: "1Qtr", Avatar: avatar,
			Enrollments: []models.Enrollment{
				{CourseID: "SE101", Name: "Introduction to Programming", Credits: 4, Grade: "A-", GPAPoints: 3.7, Status: models.StatusCompleted, ProgressPercent: 100, Mode: models.ModePhysical, Semester: "2Qtr"},
				{CourseID: "SE102", Name: "Software Design Principles", Credits: 3, Grade: "B+", GPAPoints: 3.3, Status: models.StatusInProgress, ProgressPercent: 70, Mode: models.ModePhysical, Semester: "1Qtr"},
				{CourseID: "MATH101", Name: "Calculus I", Credits: 4, Grade: models.GradeUngraded, GPAPoints: 0, Status: models.StatusRegistered, ProgressPercent: 40, Mode: models.ModePhysical, Semester: "1Qtr"},
				{CourseID: "ENG101", Name: "Technical Writing", Credits: 3, Grade: models.GradeUngraded, GPAPoints: 0, Status: models.StatusRegistered, ProgressPercent: 20, Mode: models.ModePhysical, Semester: "1Qtr"},
			},
			GradeHistory: []models.GradeHistoryRecord{
				{Semester: "2Qtr", GPA: 3.7},
				{Semester: "1Qtr", GPA: 3.5},
			},
		},
	}
}
