package service

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

type programStore interface {
	Add(ctx context.Context, program models.Program) error
	Update(ctx context.Context, name string, update models.ProgramUpdate) (models.Program, error)
	Delete(ctx context.Context, name string) error
	Get(name string) (models.Program, bool)
	All() []models.Program
}

type programUsageCounter interface {
	ProgramReferences(programName string) int
}

// CreateProgramRequest holds payload for adding a program.
type CreateProgramRequest struct {
	Name          string  `json:"name" validate:"required"`
	Department    string  `json:"department" validate:"required"`
	DurationYears float64 `json:"duration" validate:"required,gt=0"`
}

// ProgramService handles program-catalog use cases and the in-use guard.
type ProgramService struct {
	programs  programStore
	usage     programUsageCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgramService constructs a ProgramService.
func NewProgramService(programs programStore, usage programUsageCounter, validate *validator.Validate, logger *zap.Logger) *ProgramService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{programs: programs, usage: usage, validator: validate, logger: logger}
}

// List returns all programs.
func (s *ProgramService) List() []models.Program {
	return s.programs.All()
}

// Get returns one program.
func (s *ProgramService) Get(name string) (models.Program, error) {
	program, ok := s.programs.Get(name)
	if !ok {
		return models.Program{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("program %s not found", name))
	}
	return program, nil
}

// Create adds a new program. Durations snap to quarter-year granularity so
// certificate tracks like 0.25 stay representable without float drift.
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest) (models.Program, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Program{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid program payload")
	}
	program := models.Program{
		Name:          req.Name,
		Department:    req.Department,
		DurationYears: snapQuarters(req.DurationYears),
	}
	if err := s.programs.Add(ctx, program); err != nil {
		return models.Program{}, err
	}
	s.logger.Info("program added", zap.String("program", program.Name))
	return program, nil
}

// Update edits an existing program.
func (s *ProgramService) Update(ctx context.Context, name string, update models.ProgramUpdate) (models.Program, error) {
	if update.DurationYears != nil {
		if *update.DurationYears <= 0 {
			return models.Program{}, appErrors.Clone(appErrors.ErrValidation, "duration must be positive")
		}
		snapped := snapQuarters(*update.DurationYears)
		update.DurationYears = &snapped
	}
	return s.programs.Update(ctx, name, update)
}

// Delete removes a program unless any participant still references it.
func (s *ProgramService) Delete(ctx context.Context, name string) error {
	if _, ok := s.programs.Get(name); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("program %s not found", name))
	}
	if n := s.usage.ProgramReferences(name); n > 0 {
		return appErrors.Clone(appErrors.ErrInUse,
			fmt.Sprintf("cannot delete program %s: in use by %d participants", name, n))
	}
	if err := s.programs.Delete(ctx, name); err != nil {
		return err
	}
	s.logger.Info("program deleted", zap.String("program", name))
	return nil
}

func snapQuarters(years float64) float64 {
	return math.Round(years*4) / 4
}
