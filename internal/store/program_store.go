package store

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/persistence"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

// ProgramStore is the authoritative map of program name to catalog entry.
type ProgramStore struct {
	mu       sync.RWMutex
	programs map[string]models.Program
	pusher
}

// NewProgramStore constructs an empty program catalog.
func NewProgramStore(adapter persistence.Adapter, logger *zap.Logger, observe PersistObserver) *ProgramStore {
	return &ProgramStore{
		programs: make(map[string]models.Program),
		pusher:   newPusher(adapter, logger, observe),
	}
}

// Add inserts a new program.
func (s *ProgramStore) Add(ctx context.Context, program models.Program) error {
	s.mu.Lock()
	if _, exists := s.programs[program.Name]; exists {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrDuplicateKey, "program "+program.Name+" already exists")
	}
	s.programs[program.Name] = program
	s.mu.Unlock()

	s.push(ctx, "create", persistence.KindPrograms, program.Name, program)
	return nil
}

// Update applies a partial edit to an existing program.
func (s *ProgramStore) Update(ctx context.Context, name string, update models.ProgramUpdate) (models.Program, error) {
	s.mu.Lock()
	current, exists := s.programs[name]
	if !exists {
		s.mu.Unlock()
		return models.Program{}, appErrors.Clone(appErrors.ErrNotFound, "program "+name+" not found")
	}
	if update.Department != nil {
		current.Department = *update.Department
	}
	if update.DurationYears != nil {
		current.DurationYears = *update.DurationYears
	}
	s.programs[name] = current
	s.mu.Unlock()

	s.push(ctx, "update", persistence.KindPrograms, name, current)
	return current, nil
}

// Upsert inserts or fully replaces a program, reporting whether it was new.
func (s *ProgramStore) Upsert(ctx context.Context, program models.Program) (created bool) {
	s.mu.Lock()
	_, exists := s.programs[program.Name]
	s.programs[program.Name] = program
	s.mu.Unlock()

	action := "update"
	if !exists {
		action = "create"
	}
	s.push(ctx, action, persistence.KindPrograms, program.Name, program)
	return !exists
}

// Delete removes the program.
func (s *ProgramStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	if _, exists := s.programs[name]; !exists {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "program "+name+" not found")
	}
	delete(s.programs, name)
	s.mu.Unlock()

	s.push(ctx, "delete", persistence.KindPrograms, name, nil)
	return nil
}

// Get returns the program for name.
func (s *ProgramStore) Get(name string) (models.Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	program, ok := s.programs[name]
	return program, ok
}

// All returns every program ordered by name.
func (s *ProgramStore) All() []models.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Program, 0, len(s.programs))
	for _, p := range s.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the catalog size.
func (s *ProgramStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.programs)
}
