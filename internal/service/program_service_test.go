package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/store"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

func newProgramFixture(t *testing.T) (*ProgramService, *store.ParticipantStore, *store.ProgramStore) {
	t.Helper()
	participants := store.NewParticipantStore(nil, nil, nil)
	catalog := store.NewCatalogStore(nil, nil, nil)
	programs := store.NewProgramStore(nil, nil, nil)
	enrollments := NewEnrollmentService(participants, catalog, nil, nil)
	return NewProgramService(programs, enrollments, nil, nil), participants, programs
}

func TestProgramCreateSnapsDuration(t *testing.T) {
	service, _, _ := newProgramFixture(t)

	program, err := service.Create(context.Background(), CreateProgramRequest{
		Name: "Certificate Program", Department: "Professional", DurationYears: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.25, program.DurationYears)
}

func TestProgramCreateRejectsZeroDuration(t *testing.T) {
	service, _, _ := newProgramFixture(t)

	_, err := service.Create(context.Background(), CreateProgramRequest{
		Name: "Foundation Year", Department: "Preparatory", DurationYears: 0,
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestProgramCreateDuplicateName(t *testing.T) {
	service, _, _ := newProgramFixture(t)
	ctx := context.Background()

	req := CreateProgramRequest{Name: "Computer Science", Department: "Engineering", DurationYears: 4}
	_, err := service.Create(ctx, req)
	require.NoError(t, err)
	_, err = service.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDuplicateKey))
}

func TestProgramUpdate(t *testing.T) {
	service, _, _ := newProgramFixture(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateProgramRequest{Name: "Diploma Course", Department: "Professional", DurationYears: 0.5})
	require.NoError(t, err)

	duration := 1.1
	updated, err := service.Update(ctx, "Diploma Course", models.ProgramUpdate{DurationYears: &duration})
	require.NoError(t, err)
	assert.Equal(t, 1.0, updated.DurationYears)

	bad := -1.0
	_, err = service.Update(ctx, "Diploma Course", models.ProgramUpdate{DurationYears: &bad})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestProgramDeleteBlockedWhileReferenced(t *testing.T) {
	service, participants, programs := newProgramFixture(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateProgramRequest{Name: "Physics", Department: "Sciences", DurationYears: 4})
	require.NoError(t, err)
	require.NoError(t, participants.Add(ctx, models.Participant{ID: "ST001", Name: "John Smith", Program: "Physics", Year: "2025"}))

	err = service.Delete(ctx, "Physics")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInUse))

	require.NoError(t, participants.Delete(ctx, "ST001"))
	require.NoError(t, service.Delete(ctx, "Physics"))
	assert.Equal(t, 0, programs.Len())
}
