package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

const (
	defaultSemester = "1Qtr"
	defaultAvatar   = "/placeholder.svg?height=100&width=100"
	emailDomain     = "university.edu"
)

type participantCRUDStore interface {
	Add(ctx context.Context, p models.Participant) error
	Update(ctx context.Context, id string, update models.ParticipantUpdate) (models.Participant, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (models.Participant, bool)
	Filtered(filter models.ParticipantFilter) []models.Participant
}

// CreateParticipantRequest holds payload for registering a participant.
// Email and password are optional; missing values are synthesized the same
// way the legacy admin panel did.
type CreateParticipantRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Program  string `json:"program" validate:"required"`
	Year     string `json:"year" validate:"required"`
	Semester string `json:"semester"`
	Avatar   string `json:"avatar"`
	Parish   string `json:"parish"`
	Deanery  string `json:"deanery"`
	Phone    string `json:"phone"`
}

// ParticipantService handles participant record use cases.
type ParticipantService struct {
	participants participantCRUDStore
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewParticipantService constructs a ParticipantService.
func NewParticipantService(participants participantCRUDStore, validate *validator.Validate, logger *zap.Logger) *ParticipantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipantService{participants: participants, validator: validate, logger: logger}
}

// List returns participants matching the filter.
func (s *ParticipantService) List(filter models.ParticipantFilter) []models.Participant {
	return s.participants.Filtered(filter)
}

// Get returns one participant.
func (s *ParticipantService) Get(id string) (models.Participant, error) {
	p, ok := s.participants.Get(id)
	if !ok {
		return models.Participant{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", id))
	}
	return p, nil
}

// Create registers a new participant with synthesized defaults for the
// optional fields and an empty academic history.
func (s *ParticipantService) Create(ctx context.Context, req CreateParticipantRequest) (models.Participant, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Participant{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid participant payload")
	}

	p := models.Participant{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Program:      req.Program,
		Year:         req.Year,
		Semester:     req.Semester,
		Avatar:       req.Avatar,
		Parish:       req.Parish,
		Deanery:      req.Deanery,
		Phone:        req.Phone,
		Enrollments:  []models.Enrollment{},
		GradeHistory: []models.GradeHistoryRecord{{Semester: defaultSemester, GPA: 0}},
	}
	if p.Email == "" {
		p.Email = defaultEmail(p.ID)
	}
	if p.Password == "" {
		p.Password = defaultPassword(p.Name, p.ID)
	}
	if p.Semester == "" {
		p.Semester = defaultSemester
	}
	if p.Avatar == "" {
		p.Avatar = defaultAvatar
	}

	if err := s.participants.Add(ctx, p); err != nil {
		return models.Participant{}, err
	}
	s.logger.Info("participant created", zap.String("participant_id", p.ID))
	return p, nil
}

// Update applies a partial edit to the participant's scalar fields. The
// owned enrollment and grade-history lists cannot be replaced through this
// path.
func (s *ParticipantService) Update(ctx context.Context, id string, update models.ParticipantUpdate) (models.Participant, error) {
	if update.Email != nil && *update.Email != "" {
		if err := s.validator.Var(*update.Email, "email"); err != nil {
			return models.Participant{}, appErrors.Clone(appErrors.ErrValidation, "invalid email address")
		}
	}
	return s.participants.Update(ctx, id, update)
}

// Delete removes the participant. Enrollments are embedded in the record,
// so the cascade is implicit.
func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	if err := s.participants.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("participant deleted", zap.String("participant_id", id))
	return nil
}

// GradeHistory returns the participant's append-only GPA history.
func (s *ParticipantService) GradeHistory(id string) ([]models.GradeHistoryRecord, error) {
	p, ok := s.participants.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found", id))
	}
	return p.GradeHistory, nil
}

// defaultPassword derives the demo credential from the first name and the
// ID tail, e.g. ("Jane Doe", "PT123") -> "jane123". Not security-grade and
// not meant to be; the whole credential scheme is inherited as-is.
func defaultPassword(name, id string) string {
	first := name
	if i := strings.IndexByte(name, ' '); i >= 0 {
		first = name[:i]
	}
	tail := id
	if len(id) > 3 {
		tail = id[len(id)-3:]
	}
	return strings.ToLower(first) + tail
}

func defaultEmail(id string) string {
	return strings.ToLower(id) + "@" + emailDomain
}
