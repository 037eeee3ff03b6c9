package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/persistence"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

// CatalogStore is the authoritative map of course ID to catalog entry.
// Deletion is unguarded here; the in-use check runs at the service
// boundary before Delete is called.
type CatalogStore struct {
	mu      sync.RWMutex
	courses map[string]models.Course
	pusher
}

// NewCatalogStore constructs an empty course catalog.
func NewCatalogStore(adapter persistence.Adapter, logger *zap.Logger, observe PersistObserver) *CatalogStore {
	return &CatalogStore{
		courses: make(map[string]models.Course),
		pusher:  newPusher(adapter, logger, observe),
	}
}

// Add inserts a new catalog entry.
func (s *CatalogStore) Add(ctx context.Context, course models.Course) error {
	s.mu.Lock()
	if _, exists := s.courses[course.ID]; exists {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrDuplicateKey, "course "+course.ID+" already exists")
	}
	s.courses[course.ID] = course
	s.mu.Unlock()

	s.push(ctx, "create", persistence.KindCourses, course.ID, course)
	return nil
}

// Update applies a partial edit to an existing entry.
func (s *CatalogStore) Update(ctx context.Context, id string, update models.CourseUpdate) (models.Course, error) {
	s.mu.Lock()
	current, exists := s.courses[id]
	if !exists {
		s.mu.Unlock()
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course "+id+" not found")
	}
	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Credits != nil {
		current.Credits = *update.Credits
	}
	if update.Department != nil {
		current.Department = *update.Department
	}
	s.courses[id] = current
	s.mu.Unlock()

	s.push(ctx, "update", persistence.KindCourses, id, current)
	return current, nil
}

// Upsert inserts or fully replaces an entry, reporting whether it was new.
// The bulk importer routes through this.
func (s *CatalogStore) Upsert(ctx context.Context, course models.Course) (created bool) {
	s.mu.Lock()
	_, exists := s.courses[course.ID]
	s.courses[course.ID] = course
	s.mu.Unlock()

	action := "update"
	if !exists {
		action = "create"
	}
	s.push(ctx, action, persistence.KindCourses, course.ID, course)
	return !exists
}

// Delete removes the entry.
func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, exists := s.courses[id]; !exists {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "course "+id+" not found")
	}
	delete(s.courses, id)
	s.mu.Unlock()

	s.push(ctx, "delete", persistence.KindCourses, id, nil)
	return nil
}

// Get returns the entry for id.
func (s *CatalogStore) Get(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[id]
	return course, ok
}

// All returns every entry ordered by ID.
func (s *CatalogStore) All() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Filtered returns entries matching the filter, ordered by ID.
func (s *CatalogStore) Filtered(filter models.CourseFilter) []models.Course {
	all := s.All()
	if filter.Search == "" && filter.Department == "" {
		return all
	}
	search := strings.ToLower(filter.Search)
	out := make([]models.Course, 0, len(all))
	for _, c := range all {
		if filter.Department != "" && c.Department != filter.Department {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.ID), search) &&
			!strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Len reports the catalog size.
func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses)
}
