package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/export"
)

type participantImportStore interface {
	Get(id string) (models.Participant, bool)
	Add(ctx context.Context, p models.Participant) error
	Replace(ctx context.Context, p models.Participant) error
}

type courseImportStore interface {
	Get(id string) (models.Course, bool)
	Upsert(ctx context.Context, course models.Course) bool
}

type programImportStore interface {
	Get(name string) (models.Program, bool)
	Upsert(ctx context.Context, program models.Program) bool
}

type enroller interface {
	Enroll(ctx context.Context, req EnrollRequest) (models.Enrollment, error)
	UpdateGrade(ctx context.Context, participantID, courseID, grade string) (models.Enrollment, error)
}

type rowDecoder interface {
	Parse(r io.Reader) (export.Dataset, error)
}

// ImportService reconciles tabular files against the stores: each row is
// validated, then routed to insert-or-update. Row failures are collected
// with their 1-based position and never abort the batch, so a partially
// committed file is an expected outcome, not an error state.
type ImportService struct {
	participants participantImportStore
	courses      courseImportStore
	programs     programImportStore
	enrollments  enroller
	decoder      rowDecoder
	logger       *zap.Logger
}

// NewImportService constructs an ImportService.
func NewImportService(participants participantImportStore, courses courseImportStore, programs programImportStore, enrollments enroller, decoder rowDecoder, logger *zap.Logger) *ImportService {
	if decoder == nil {
		decoder = export.NewCSVCodec()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		participants: participants,
		courses:      courses,
		programs:     programs,
		enrollments:  enrollments,
		decoder:      decoder,
		logger:       logger,
	}
}

// Import parses the document and applies it row by row in file order.
func (s *ImportService) Import(ctx context.Context, kind models.ImportKind, r io.Reader) (models.ImportSummary, error) {
	dataset, err := s.decoder.Parse(r)
	if err != nil {
		return models.ImportSummary{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not parse import document")
	}

	summary := models.ImportSummary{BatchID: uuid.NewString(), Kind: kind}
	var apply func(ctx context.Context, row map[string]string, summary *models.ImportSummary) error
	switch kind {
	case models.ImportParticipants:
		apply = s.applyParticipantRow
	case models.ImportCourses:
		apply = s.applyCourseRow
	case models.ImportPrograms:
		apply = s.applyProgramRow
	case models.ImportEnrollments:
		apply = s.applyEnrollmentRow
	case models.ImportGrades:
		apply = s.applyGradeRow
	default:
		return models.ImportSummary{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown import kind %q", kind))
	}

	for i, row := range dataset.Rows {
		if err := apply(ctx, row, &summary); err != nil {
			summary.Errors++
			summary.Messages = append(summary.Messages, fmt.Sprintf("row %d: %s", i+1, appErrors.FromError(err).Message))
		}
	}

	s.logger.Info("import finished",
		zap.String("batch_id", summary.BatchID),
		zap.String("kind", string(kind)),
		zap.Int("imported", summary.Imported),
		zap.Int("updated", summary.Updated),
		zap.Int("errors", summary.Errors))
	return summary, nil
}

func (s *ImportService) applyParticipantRow(ctx context.Context, row map[string]string, summary *models.ImportSummary) error {
	id := strings.TrimSpace(row["id"])
	name := strings.TrimSpace(row["name"])
	switch {
	case id == "":
		return appErrors.Clone(appErrors.ErrValidation, "participant id is required")
	case name == "":
		return appErrors.Clone(appErrors.ErrValidation, "participant name is required")
	case strings.TrimSpace(row["program"]) == "":
		return appErrors.Clone(appErrors.ErrValidation, "program is required")
	case strings.TrimSpace(row["year"]) == "":
		return appErrors.Clone(appErrors.ErrValidation, "year is required")
	}

	p := models.Participant{
		ID:       id,
		Name:     name,
		Email:    strings.TrimSpace(row["email"]),
		Password: strings.TrimSpace(row["password"]),
		Program:  strings.TrimSpace(row["program"]),
		Year:     strings.TrimSpace(row["year"]),
		Semester: strings.TrimSpace(row["semester"]),
		Avatar:   defaultAvatar,
		Parish:   strings.TrimSpace(row["parish"]),
		Deanery:  strings.TrimSpace(row["deanery"]),
		Phone:    strings.TrimSpace(row["phone"]),
	}
	if p.Email == "" {
		p.Email = defaultEmail(id)
	}
	if p.Password == "" {
		p.Password = defaultPassword(name, id)
	}
	if p.Semester == "" {
		p.Semester = defaultSemester
	}

	if existing, ok := s.participants.Get(id); ok {
		// Import overwrites the scalar fields but never truncates the
		// academic history the participant already carries.
		p.Enrollments = existing.Enrollments
		p.GradeHistory = existing.GradeHistory
		if err := s.participants.Replace(ctx, p); err != nil {
			return err
		}
		summary.Updated++
		return nil
	}

	p.Enrollments = []models.Enrollment{}
	p.GradeHistory = []models.GradeHistoryRecord{{Semester: defaultSemester, GPA: 0}}
	if err := s.participants.Add(ctx, p); err != nil {
		return err
	}
	summary.Imported++
	return nil
}

func (s *ImportService) applyCourseRow(ctx context.Context, row map[string]string, summary *models.ImportSummary) error {
	id := strings.TrimSpace(row["id"])
	name := strings.TrimSpace(row["name"])
	switch {
	case id == "":
		return appErrors.Clone(appErrors.ErrValidation, "course id is required")
	case name == "":
		return appErrors.Clone(appErrors.ErrValidation, "course name is required")
	}

	credits := 3
	if raw := strings.TrimSpace(row["credits"]); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			credits = parsed
		}
	}
	department := strings.TrimSpace(row["department"])
	if department == "" {
		department = "General"
	}

	course := models.Course{ID: id, Name: name, Credits: credits, Department: department}
	if s.courses.Upsert(ctx, course) {
		summary.Imported++
	} else {
		summary.Updated++
	}
	return nil
}

func (s *ImportService) applyProgramRow(ctx context.Context, row map[string]string, summary *models.ImportSummary) error {
	name := strings.TrimSpace(row["name"])
	department := strings.TrimSpace(row["department"])
	switch {
	case name == "":
		return appErrors.Clone(appErrors.ErrValidation, "program name is required")
	case department == "":
		return appErrors.Clone(appErrors.ErrValidation, "department is required")
	}

	duration := 4.0
	if raw := strings.TrimSpace(row["duration"]); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			duration = parsed
		}
	}

	program := models.Program{Name: name, Department: department, DurationYears: duration}
	if s.programs.Upsert(ctx, program) {
		summary.Imported++
	} else {
		summary.Updated++
	}
	return nil
}

func (s *ImportService) applyEnrollmentRow(ctx context.Context, row map[string]string, summary *models.ImportSummary) error {
	participantID := strings.TrimSpace(row["studentId"])
	courseID := strings.TrimSpace(row["courseId"])
	switch {
	case participantID == "":
		return appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	case courseID == "":
		return appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	}

	_, err := s.enrollments.Enroll(ctx, EnrollRequest{
		ParticipantID: participantID,
		CourseID:      courseID,
		Mode:          models.StudyMode(strings.TrimSpace(row["mode"])),
		Semester:      strings.TrimSpace(row["semester"]),
		Status:        normalizeStatus(row["status"]),
		Grade:         strings.TrimSpace(row["grade"]),
	})
	if err != nil {
		return err
	}
	summary.Imported++
	return nil
}

func (s *ImportService) applyGradeRow(ctx context.Context, row map[string]string, summary *models.ImportSummary) error {
	participantID := strings.TrimSpace(row["studentId"])
	courseID := strings.TrimSpace(row["courseId"])
	grade := strings.TrimSpace(row["grade"])
	switch {
	case participantID == "":
		return appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	case courseID == "":
		return appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	case grade == "":
		return appErrors.Clone(appErrors.ErrValidation, "grade is required")
	}

	if _, err := s.enrollments.UpdateGrade(ctx, participantID, courseID, grade); err != nil {
		return err
	}
	summary.Updated++
	return nil
}

// normalizeStatus defaults a missing status to Registered, the same default
// the enrollment template carries.
func normalizeStatus(raw string) models.EnrollmentStatus {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.StatusRegistered
	}
	return models.EnrollmentStatus(trimmed)
}
