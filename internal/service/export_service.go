package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/export"
)

// Import/export headers. Export column order is the exact inverse of what
// the importer expects, so import(export(X)) reproduces X.
var (
	participantHeaders = []string{"id", "name", "email", "password", "program", "year", "semester", "parish", "deanery", "phone"}
	courseHeaders      = []string{"id", "name", "credits", "department"}
	programHeaders     = []string{"name", "department", "duration"}
	enrollmentHeaders  = []string{"studentId", "courseId", "mode", "semester", "status", "grade"}
	gradeHeaders       = []string{"studentId", "courseId", "grade"}
)

type participantLister interface {
	All() []models.Participant
	Get(id string) (models.Participant, bool)
}

type courseLister interface {
	All() []models.Course
}

type programLister interface {
	All() []models.Program
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, footers []string) ([]byte, error)
}

// ExportService projects store state into flat rows. Reads only; nothing
// here mutates a store.
type ExportService struct {
	participants participantLister
	courses      courseLister
	programs     programLister
	csv          csvRenderer
	pdf          pdfRenderer
	logger       *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(participants participantLister, courses courseLister, programs programLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVCodec()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{participants: participants, courses: courses, programs: programs, csv: csv, pdf: pdf, logger: logger}
}

// ParticipantsDataset flattens the participant store. Enrollments and grade
// history travel through the enrollment export, not here.
func (s *ExportService) ParticipantsDataset() export.Dataset {
	ds := export.Dataset{Headers: participantHeaders}
	for _, p := range s.participants.All() {
		ds.Rows = append(ds.Rows, map[string]string{
			"id":       p.ID,
			"name":     p.Name,
			"email":    p.Email,
			"password": p.Password,
			"program":  p.Program,
			"year":     p.Year,
			"semester": p.Semester,
			"parish":   p.Parish,
			"deanery":  p.Deanery,
			"phone":    p.Phone,
		})
	}
	return ds
}

// CoursesDataset flattens the course catalog.
func (s *ExportService) CoursesDataset() export.Dataset {
	ds := export.Dataset{Headers: courseHeaders}
	for _, c := range s.courses.All() {
		ds.Rows = append(ds.Rows, map[string]string{
			"id":         c.ID,
			"name":       c.Name,
			"credits":    strconv.Itoa(c.Credits),
			"department": c.Department,
		})
	}
	return ds
}

// ProgramsDataset flattens the program catalog.
func (s *ExportService) ProgramsDataset() export.Dataset {
	ds := export.Dataset{Headers: programHeaders}
	for _, p := range s.programs.All() {
		ds.Rows = append(ds.Rows, map[string]string{
			"name":       p.Name,
			"department": p.Department,
			"duration":   strconv.FormatFloat(p.DurationYears, 'f', -1, 64),
		})
	}
	return ds
}

// EnrollmentsDataset flattens every participant's enrollment list.
func (s *ExportService) EnrollmentsDataset() export.Dataset {
	ds := export.Dataset{Headers: enrollmentHeaders}
	for _, p := range s.participants.All() {
		for _, e := range p.Enrollments {
			ds.Rows = append(ds.Rows, map[string]string{
				"studentId": p.ID,
				"courseId":  e.CourseID,
				"mode":      string(e.Mode),
				"semester":  e.Semester,
				"status":    string(e.Status),
				"grade":     e.Grade,
			})
		}
	}
	return ds
}

// RenderCSV renders the dataset for the given kind.
func (s *ExportService) RenderCSV(kind models.ImportKind) ([]byte, error) {
	var ds export.Dataset
	switch kind {
	case models.ImportParticipants:
		ds = s.ParticipantsDataset()
	case models.ImportCourses:
		ds = s.CoursesDataset()
	case models.ImportPrograms:
		ds = s.ProgramsDataset()
	case models.ImportEnrollments:
		ds = s.EnrollmentsDataset()
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export kind %q", kind))
	}
	return s.csv.Render(ds)
}

// TemplateCSV returns a one-row sample document for the given import kind.
func (s *ExportService) TemplateCSV(kind models.ImportKind) ([]byte, error) {
	switch kind {
	case models.ImportParticipants:
		return s.csv.Render(export.Dataset{Headers: participantHeaders, Rows: []map[string]string{{
			"id": "ST001", "name": "John Doe", "email": "john@example.com", "password": "john123",
			"program": "Computer Science", "year": "2025", "semester": "1Qtr",
			"parish": "St. Mary Parish", "deanery": "Eastern Deanery", "phone": "+1234567890",
		}}})
	case models.ImportCourses:
		return s.csv.Render(export.Dataset{Headers: courseHeaders, Rows: []map[string]string{{
			"id": "CS501", "name": "Advanced Programming", "credits": "3", "department": "Computer Science",
		}}})
	case models.ImportPrograms:
		return s.csv.Render(export.Dataset{Headers: programHeaders, Rows: []map[string]string{{
			"name": "Computer Science", "department": "Engineering", "duration": "4",
		}}})
	case models.ImportEnrollments:
		return s.csv.Render(export.Dataset{Headers: enrollmentHeaders, Rows: []map[string]string{{
			"studentId": "ST001", "courseId": "CS101", "mode": "Physical", "semester": "1Qtr",
			"status": "In Progress", "grade": models.GradeUngraded,
		}}})
	case models.ImportGrades:
		return s.csv.Render(export.Dataset{Headers: gradeHeaders, Rows: []map[string]string{{
			"studentId": "ST001", "courseId": "CS101", "grade": "A",
		}}})
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown template kind %q", kind))
	}
}

// TranscriptPDF renders a participant's transcript with a cumulative GPA
// footer.
func (s *ExportService) TranscriptPDF(participantID string) ([]byte, error) {
	p, ok := s.participants.Get(participantID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", participantID))
	}
	ds := export.Dataset{Headers: []string{"Course", "Title", "Credits", "Semester", "Grade", "Status"}}
	for _, e := range p.Enrollments {
		ds.Rows = append(ds.Rows, map[string]string{
			"Course":   e.CourseID,
			"Title":    e.Name,
			"Credits":  strconv.Itoa(e.Credits),
			"Semester": e.Semester,
			"Grade":    e.Grade,
			"Status":   string(e.Status),
		})
	}
	footers := []string{
		fmt.Sprintf("Cumulative GPA: %.2f", ComputeGPA(p.Enrollments)),
		fmt.Sprintf("Program: %s", p.Program),
	}
	title := fmt.Sprintf("Academic Transcript - %s (%s)", p.Name, p.ID)
	return s.pdf.Render(ds, title, footers)
}
