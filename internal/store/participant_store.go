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

// ParticipantStore is the authoritative map of participant ID to record.
// Each record owns its enrollment and grade-history lists; every read hands
// out a deep copy so the owned slices cannot be mutated behind the lock.
// Enrollment-list changes must come in through Replace, committed by the
// enrollment service, never by handlers patching fields directly.
type ParticipantStore struct {
	mu           sync.RWMutex
	participants map[string]models.Participant
	pusher
}

// NewParticipantStore constructs an empty participant store.
func NewParticipantStore(adapter persistence.Adapter, logger *zap.Logger, observe PersistObserver) *ParticipantStore {
	return &ParticipantStore{
		participants: make(map[string]models.Participant),
		pusher:       newPusher(adapter, logger, observe),
	}
}

// Add inserts a new participant.
func (s *ParticipantStore) Add(ctx context.Context, p models.Participant) error {
	s.mu.Lock()
	if _, exists := s.participants[p.ID]; exists {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrDuplicateKey, "participant "+p.ID+" already exists")
	}
	s.participants[p.ID] = p.Clone()
	s.mu.Unlock()

	s.push(ctx, "create", persistence.KindParticipants, p.ID, p)
	return nil
}

// Update applies a partial edit to the participant's scalar fields. The
// enrollment and grade-history lists are untouched.
func (s *ParticipantStore) Update(ctx context.Context, id string, update models.ParticipantUpdate) (models.Participant, error) {
	s.mu.Lock()
	current, exists := s.participants[id]
	if !exists {
		s.mu.Unlock()
		return models.Participant{}, appErrors.Clone(appErrors.ErrNotFound, "participant "+id+" not found")
	}
	next := current.Clone()
	if update.Name != nil {
		next.Name = *update.Name
	}
	if update.Email != nil {
		next.Email = *update.Email
	}
	if update.Password != nil {
		next.Password = *update.Password
	}
	if update.Program != nil {
		next.Program = *update.Program
	}
	if update.Year != nil {
		next.Year = *update.Year
	}
	if update.Semester != nil {
		next.Semester = *update.Semester
	}
	if update.Avatar != nil {
		next.Avatar = *update.Avatar
	}
	if update.Parish != nil {
		next.Parish = *update.Parish
	}
	if update.Deanery != nil {
		next.Deanery = *update.Deanery
	}
	if update.Phone != nil {
		next.Phone = *update.Phone
	}
	s.participants[id] = next
	s.mu.Unlock()

	s.push(ctx, "update", persistence.KindParticipants, id, next)
	return next.Clone(), nil
}

// Replace swaps in a fully built record. This is the commit point for
// copy-on-write mutations prepared by the enrollment service and the bulk
// importer; it fails when the participant is gone.
func (s *ParticipantStore) Replace(ctx context.Context, p models.Participant) error {
	s.mu.Lock()
	if _, exists := s.participants[p.ID]; !exists {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "participant "+p.ID+" not found")
	}
	s.participants[p.ID] = p.Clone()
	s.mu.Unlock()

	s.push(ctx, "update", persistence.KindParticipants, p.ID, p)
	return nil
}

// Delete removes the participant. The embedded enrollments go with the
// record; nothing external references them.
func (s *ParticipantStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, exists := s.participants[id]; !exists {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "participant "+id+" not found")
	}
	delete(s.participants, id)
	s.mu.Unlock()

	s.push(ctx, "delete", persistence.KindParticipants, id, nil)
	return nil
}

// Get returns a deep copy of the participant.
func (s *ParticipantStore) Get(id string) (models.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[id]
	if !ok {
		return models.Participant{}, false
	}
	return p.Clone(), true
}

// FindByEmail returns the participant with the given email, if any.
func (s *ParticipantStore) FindByEmail(email string) (models.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants {
		if strings.EqualFold(p.Email, email) {
			return p.Clone(), true
		}
	}
	return models.Participant{}, false
}

// All returns deep copies of every participant ordered by ID.
func (s *ParticipantStore) All() []models.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Filtered returns participants matching the filter, ordered by ID.
func (s *ParticipantStore) Filtered(filter models.ParticipantFilter) []models.Participant {
	all := s.All()
	if filter.Search == "" && filter.Program == "" && filter.Deanery == "" && filter.Parish == "" {
		return all
	}
	search := strings.ToLower(filter.Search)
	out := make([]models.Participant, 0, len(all))
	for _, p := range all {
		if filter.Program != "" && p.Program != filter.Program {
			continue
		}
		if filter.Deanery != "" && p.Deanery != filter.Deanery {
			continue
		}
		if filter.Parish != "" && p.Parish != filter.Parish {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.ID), search) &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Email), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Len reports how many participants the store holds.
func (s *ParticipantStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}
