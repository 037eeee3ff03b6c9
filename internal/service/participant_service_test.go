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

func newParticipantFixture(t *testing.T) (*ParticipantService, *store.ParticipantStore) {
	t.Helper()
	participants := store.NewParticipantStore(nil, nil, nil)
	return NewParticipantService(participants, nil, nil), participants
}

func TestParticipantCreateSynthesizesDefaults(t *testing.T) {
	service, _ := newParticipantFixture(t)

	p, err := service.Create(context.Background(), CreateParticipantRequest{
		ID: "PT123", Name: "Jane Doe", Program: "Computer Science", Year: "2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "pt123@university.edu", p.Email)
	assert.Equal(t, "jane123", p.Password)
	assert.Equal(t, "1Qtr", p.Semester)
	assert.Equal(t, "/placeholder.svg?height=100&width=100", p.Avatar)
	assert.Equal(t, []models.Enrollment{}, p.Enrollments)
	assert.Equal(t, []models.GradeHistoryRecord{{Semester: "1Qtr", GPA: 0}}, p.GradeHistory)
}

func TestParticipantCreateKeepsExplicitValues(t *testing.T) {
	service, _ := newParticipantFixture(t)

	p, err := service.Create(context.Background(), CreateParticipantRequest{
		ID: "ST001", Name: "John Smith", Email: "john@example.com", Password: "secret",
		Program: "Computer Science", Year: "2025", Semester: "2Qtr",
	})
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", p.Email)
	assert.Equal(t, "secret", p.Password)
	assert.Equal(t, "2Qtr", p.Semester)
}

func TestParticipantCreateDuplicateID(t *testing.T) {
	service, _ := newParticipantFixture(t)
	ctx := context.Background()

	req := CreateParticipantRequest{ID: "ST001", Name: "John Smith", Program: "Computer Science", Year: "2025"}
	_, err := service.Create(ctx, req)
	require.NoError(t, err)
	_, err = service.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDuplicateKey))
}

func TestParticipantCreateMissingRequired(t *testing.T) {
	service, _ := newParticipantFixture(t)

	_, err := service.Create(context.Background(), CreateParticipantRequest{ID: "ST001", Name: "John Smith"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestParticipantUpdateScalars(t *testing.T) {
	service, participants := newParticipantFixture(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateParticipantRequest{ID: "ST001", Name: "John Smith", Program: "Computer Science", Year: "2025"})
	require.NoError(t, err)

	phone := "+1234567890"
	updated, err := service.Update(ctx, "ST001", models.ParticipantUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "John Smith", updated.Name)

	bad := "not-an-email"
	_, err = service.Update(ctx, "ST001", models.ParticipantUpdate{Email: &bad})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	p, ok := participants.Get("ST001")
	require.True(t, ok)
	assert.Equal(t, phone, p.Phone)
}

func TestParticipantDeleteCascades(t *testing.T) {
	service, participants := newParticipantFixture(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateParticipantRequest{ID: "ST001", Name: "John Smith", Program: "Computer Science", Year: "2025"})
	require.NoError(t, err)

	p, ok := participants.Get("ST001")
	require.True(t, ok)
	p.Enrollments = append(p.Enrollments, models.Enrollment{CourseID: "CS101", Name: "Intro", Credits: 3, Grade: "A", GPAPoints: 4, Status: models.StatusCompleted, ProgressPercent: 100})
	require.NoError(t, participants.Replace(ctx, p))

	require.NoError(t, service.Delete(ctx, "ST001"))
	_, ok = participants.Get("ST001")
	assert.False(t, ok)
	assert.Equal(t, 0, participants.Len())

	err = service.Delete(ctx, "ST001")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestParticipantGradeHistory(t *testing.T) {
	service, _ := newParticipantFixture(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateParticipantRequest{ID: "ST001", Name: "John Smith", Program: "Computer Science", Year: "2025"})
	require.NoError(t, err)

	history, err := service.GradeHistory("ST001")
	require.NoError(t, err)
	assert.Equal(t, []models.GradeHistoryRecord{{Semester: "1Qtr", GPA: 0}}, history)

	_, err = service.GradeHistory("ST999")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestDefaultPassword(t *testing.T) {
	assert.Equal(t, "jane123", defaultPassword("Jane Doe", "PT123"))
	assert.Equal(t, "john001", defaultPassword("John", "ST001"))
	assert.Equal(t, "amy42", defaultPassword("Amy Lee", "42"))
}
