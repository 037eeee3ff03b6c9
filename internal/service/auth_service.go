package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

type participantCredentialReader interface {
	Get(id string) (models.Participant, bool)
	FindByEmail(email string) (models.Participant, bool)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret        string
	Expiry        time.Duration
	Issuer        string
	AdminUsername string
	AdminPassword string
}

// AuthService issues and validates access tokens for the admin account and
// for participants. Participant passwords are compared in plain text: the
// record system this replaces stores demo credentials that way, and
// hardening them is explicitly out of scope here.
type AuthService struct {
	participants participantCredentialReader
	validator    *validator.Validate
	logger       *zap.Logger
	config       AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(participants participantCredentialReader, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiry <= 0 {
		config.Expiry = 24 * time.Hour
	}
	return &AuthService{participants: participants, validator: validate, logger: logger, config: config}
}

// Login authenticates either the configured admin or a participant by
// ID/email and returns an access token.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if req.Username == s.config.AdminUsername {
		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.AdminPassword)) != 1 {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return s.issue(req.Username, models.RoleAdmin, "Administrator")
	}

	participant, ok := s.participants.Get(req.Username)
	if !ok {
		participant, ok = s.participants.FindByEmail(req.Username)
	}
	if !ok || subtle.ConstantTimeCompare([]byte(req.Password), []byte(participant.Password)) != 1 {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return s.issue(participant.ID, models.RoleParticipant, participant.Name)
}

func (s *AuthService) issue(subject, role, name string) (*models.LoginResponse, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiry)
	claims := &models.JWTClaims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}

	s.logger.Info("login", zap.String("subject", subject), zap.String("role", role))
	return &models.LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.Expiry.Seconds()),
		Role:        role,
		SubjectID:   subject,
		Name:        name,
	}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
