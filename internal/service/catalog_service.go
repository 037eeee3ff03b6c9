package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

type courseStore interface {
	Add(ctx context.Context, course models.Course) error
	Update(ctx context.Context, id string, update models.CourseUpdate) (models.Course, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (models.Course, bool)
	Filtered(filter models.CourseFilter) []models.Course
}

type courseUsageCounter interface {
	CourseReferences(courseID string) int
}

// CreateCourseRequest holds payload for adding a catalog entry.
type CreateCourseRequest struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Credits    int    `json:"credits" validate:"required,min=1,max=6"`
	Department string `json:"department" validate:"required"`
}

// CatalogService handles course-catalog use cases, including the in-use
// deletion guard. The store's Delete is unguarded; the guard lives here.
type CatalogService struct {
	courses   courseStore
	usage     courseUsageCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(courses courseStore, usage courseUsageCounter, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{courses: courses, usage: usage, validator: validate, logger: logger}
}

// List returns catalog entries matching the filter.
func (s *CatalogService) List(filter models.CourseFilter) []models.Course {
	return s.courses.Filtered(filter)
}

// Get returns one catalog entry.
func (s *CatalogService) Get(id string) (models.Course, error) {
	course, ok := s.courses.Get(id)
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", id))
	}
	return course, nil
}

// Create adds a new catalog entry.
func (s *CatalogService) Create(ctx context.Context, req CreateCourseRequest) (models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := models.Course{ID: req.ID, Name: req.Name, Credits: req.Credits, Department: req.Department}
	if err := s.courses.Add(ctx, course); err != nil {
		return models.Course{}, err
	}
	s.logger.Info("course added to catalog", zap.String("course_id", course.ID))
	return course, nil
}

// Update edits an existing catalog entry. Enrollments that snapshotted the
// entry keep their old name and credits.
func (s *CatalogService) Update(ctx context.Context, id string, update models.CourseUpdate) (models.Course, error) {
	if update.Credits != nil && (*update.Credits < 1 || *update.Credits > 6) {
		return models.Course{}, appErrors.Clone(appErrors.ErrValidation, "credits must be between 1 and 6")
	}
	return s.courses.Update(ctx, id, update)
}

// Delete removes a catalog entry unless any enrollment still references it.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if _, ok := s.courses.Get(id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", id))
	}
	if n := s.usage.CourseReferences(id); n > 0 {
		return appErrors.Clone(appErrors.ErrInUse,
			fmt.Sprintf("cannot delete course %s: in use by %d participants", id, n))
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("course deleted from catalog", zap.String("course_id", id))
	return nil
}
