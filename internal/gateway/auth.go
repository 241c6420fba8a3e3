package gateway

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/sojus-client/internal/api/dto"
	"github.com/spec-kit/sojus-client/internal/domain"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// AuthService wraps the authentication endpoints.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a token. Any HTTP rejection is reported as
// AUTHENTICATION_FAILED carrying the server message, or the default message
// when the server sent none.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	var resp dto.LoginResponse
	err := s.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   dto.LoginRequest{Username: username, Password: password},
		Public: true,
	}, &resp)
	if err != nil {
		if de := apperrors.ToDomainError(err); de.HTTPStatus >= 400 && de.HTTPStatus < 500 {
			msg := apperrors.ServerMessage(err)
			if msg == "" {
				msg = apperrors.MsgInvalidCredentials
			}
			return "", nil, apperrors.NewAuthenticationError(msg, err)
		}
		return "", nil, err
	}

	user := resp.User
	if user.Username == "" {
		user.Username = username
	}
	return resp.Token, &user, nil
}

// Me returns the user bound to the current token.
func (s *AuthService) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/auth/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TokenInfo is what the client can read from a JWT without the signing key.
type TokenInfo struct {
	Subject   string
	IssuedAt  *jwt.NumericDate
	ExpiresAt *jwt.NumericDate
}

// InspectToken decodes the claims of a JWT without verifying it. The result is
// for display only; the server remains the authority on validity.
func InspectToken(token string) (TokenInfo, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, err
	}
	return TokenInfo{Subject: claims.Subject, IssuedAt: claims.IssuedAt, ExpiresAt: claims.ExpiresAt}, nil
}
