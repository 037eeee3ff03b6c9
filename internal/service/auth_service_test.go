package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/store"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	participants := store.NewParticipantStore(nil, nil, nil)
	require.NoError(t, participants.Add(context.Background(), models.Participant{
		ID: "ST001", Name: "John Smith", Email: "john.smith@university.edu",
		Password: "john123", Program: "Computer Science", Year: "2025",
	}))
	return NewAuthService(participants, nil, nil, AuthConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		Issuer:        "academic-records-api",
		AdminUsername: "admin",
		AdminPassword: "admin123",
	})
}

func TestLoginAdmin(t *testing.T) {
	auth := newAuthFixture(t)

	resp, err := auth.Login(models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginAdminWrongPassword(t *testing.T) {
	auth := newAuthFixture(t)

	_, err := auth.Login(models.LoginRequest{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials))
}

func TestLoginParticipantByID(t *testing.T) {
	auth := newAuthFixture(t)

	resp, err := auth.Login(models.LoginRequest{Username: "ST001", Password: "john123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleParticipant, resp.Role)
	assert.Equal(t, "ST001", resp.SubjectID)
	assert.Equal(t, "John Smith", resp.Name)
}

func TestLoginParticipantByEmail(t *testing.T) {
	auth := newAuthFixture(t)

	resp, err := auth.Login(models.LoginRequest{Username: "john.smith@university.edu", Password: "john123"})
	require.NoError(t, err)
	assert.Equal(t, "ST001", resp.SubjectID)
}

func TestLoginUnknownOrWrongPassword(t *testing.T) {
	auth := newAuthFixture(t)

	_, err := auth.Login(models.LoginRequest{Username: "ST999", Password: "john123"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials))

	_, err = auth.Login(models.LoginRequest{Username: "ST001", Password: "wrong"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials))
}

func TestLoginMissingFields(t *testing.T) {
	auth := newAuthFixture(t)

	_, err := auth.Login(models.LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestValidateToken(t *testing.T) {
	auth := newAuthFixture(t)

	resp, err := auth.Login(models.LoginRequest{Username: "ST001", Password: "john123"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ST001", claims.Subject)
	assert.Equal(t, models.RoleParticipant, claims.Role)
	assert.Equal(t, "academic-records-api", claims.Issuer)

	_, err = auth.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized))
}
