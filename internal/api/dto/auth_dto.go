package dto

import "github.com/spec-kit/sojus-client/internal/domain"

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the token plus the user fields, flattened.
type LoginResponse struct {
	Token string `json:"token"`
	domain.User
}
