package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

type participantStore interface {
	Get(id string) (models.Participant, bool)
	Replace(ctx context.Context, p models.Participant) error
	All() []models.Participant
}

type courseReader interface {
	Get(id string) (models.Course, bool)
}

// EnrollRequest describes an enrollment creation. Status and Grade are
// optional; the bulk importer supplies them from the file, the manual path
// leaves them empty and gets the derived defaults.
type EnrollRequest struct {
	ParticipantID string                  `json:"participant_id" validate:"required"`
	CourseID      string                  `json:"course_id" validate:"required"`
	Mode          models.StudyMode        `json:"mode"`
	Semester      string                  `json:"semester"`
	Status        models.EnrollmentStatus `json:"status"`
	Grade         string                  `json:"grade"`
}

// EnrollmentService owns every mutation of a participant's enrollment list
// and the grade derivation rule. Manual edits and both import paths all
// route through it, so the triple
// (gpa, status, progress) has exactly one source.
type EnrollmentService struct {
	participants participantStore
	catalog      courseReader
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(participants participantStore, catalog courseReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{participants: participants, catalog: catalog, validator: validate, logger: logger}
}

// Enroll registers a participant on a course, snapshotting the catalog
// name and credits at this instant. Later catalog edits do not propagate
// to the created enrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Enrollment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	participant, ok := s.participants.Get(req.ParticipantID)
	if !ok {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", req.ParticipantID))
	}
	course, ok := s.catalog.Get(req.CourseID)
	if !ok {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found in catalog", req.CourseID))
	}
	if participant.FindEnrollment(req.CourseID) >= 0 {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrDuplicateKey,
			fmt.Sprintf("participant %s is already enrolled in course %s", req.ParticipantID, req.CourseID))
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModePhysical
	}
	semester := req.Semester
	if semester == "" {
		semester = "1Qtr"
	}
	grade := req.Grade
	if grade == "" {
		grade = models.GradeUngraded
	}

	enrollment := models.Enrollment{
		CourseID: course.ID,
		Name:     course.Name,
		Credits:  course.Credits,
		Grade:    grade,
		Mode:     mode,
		Semester: semester,
	}
	if req.Status != "" {
		// Explicit status wins over derivation: grade points still come
		// from the table, progress from the status mapping. Only this path
		// can produce In Progress.
		enrollment.Status = req.Status
		enrollment.GPAPoints = GradePoints(grade)
		enrollment.ProgressPercent = ProgressForStatus(req.Status)
	} else {
		derived := DeriveState(grade)
		enrollment.Status = derived.Status
		enrollment.GPAPoints = derived.GPAPoints
		enrollment.ProgressPercent = derived.ProgressPercent
	}

	participant.Enrollments = append(participant.Enrollments, enrollment)
	if err := s.participants.Replace(ctx, participant); err != nil {
		return models.Enrollment{}, err
	}
	s.logger.Info("participant enrolled",
		zap.String("participant_id", req.ParticipantID),
		zap.String("course_id", req.CourseID),
		zap.String("status", string(enrollment.Status)))
	return enrollment, nil
}

// UpdateGrade applies the derivation rule to an existing enrollment,
// replacing its grade, gpa, status and progress in one step.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, participantID, courseID, grade string) (models.Enrollment, error) {
	participant, ok := s.participants.Get(participantID)
	if !ok {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", participantID))
	}
	idx := participant.FindEnrollment(courseID)
	if idx < 0 {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("participant %s is not enrolled in course %s", participantID, courseID))
	}

	derived := DeriveState(grade)
	enrollment := participant.Enrollments[idx]
	enrollment.Grade = grade
	enrollment.GPAPoints = derived.GPAPoints
	enrollment.Status = derived.Status
	enrollment.ProgressPercent = derived.ProgressPercent
	participant.Enrollments[idx] = enrollment

	if err := s.participants.Replace(ctx, participant); err != nil {
		return models.Enrollment{}, err
	}
	s.logger.Info("grade updated",
		zap.String("participant_id", participantID),
		zap.String("course_id", courseID),
		zap.String("grade", grade),
		zap.String("status", string(enrollment.Status)))
	return enrollment, nil
}

// Unenroll removes the matching enrollment from the participant.
func (s *EnrollmentService) Unenroll(ctx context.Context, participantID, courseID string) error {
	participant, ok := s.participants.Get(participantID)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", participantID))
	}
	idx := participant.FindEnrollment(courseID)
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("participant %s is not enrolled in course %s", participantID, courseID))
	}
	participant.Enrollments = append(participant.Enrollments[:idx], participant.Enrollments[idx+1:]...)
	return s.participants.Replace(ctx, participant)
}

// List returns the participant's enrollments.
func (s *EnrollmentService) List(participantID string) ([]models.Enrollment, error) {
	participant, ok := s.participants.Get(participantID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", participantID))
	}
	return participant.Enrollments, nil
}

// GPA returns the participant's credit-weighted GPA.
func (s *EnrollmentService) GPA(participantID string) (float64, error) {
	participant, ok := s.participants.Get(participantID)
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", participantID))
	}
	return ComputeGPA(participant.Enrollments), nil
}

// CourseReferences counts participants holding an enrollment on courseID.
// The catalog delete flow runs this guard before removing the entry.
func (s *EnrollmentService) CourseReferences(courseID string) int {
	count := 0
	for _, p := range s.participants.All() {
		if p.FindEnrollment(courseID) >= 0 {
			count++
		}
	}
	return count
}

// ProgramReferences counts participants assigned to the program.
func (s *EnrollmentService) ProgramReferences(programName string) int {
	count := 0
	for _, p := range s.participants.All() {
		if p.Program == programName {
			count++
		}
	}
	return count
}
