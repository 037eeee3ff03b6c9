package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in access tokens.
const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// LoginRequest is the credential payload for both admin and participant
// logins. Username is either the configured admin username or a
// participant ID / email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Role        string `json:"role"`
	SubjectID   string `json:"subject_id"`
	Name        string `json:"name"`
}

// JWTClaims are the custom claims embedded in access tokens.
type JWTClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}
