package backend

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/api/dto"
	"github.com/spec-kit/sojus-client/internal/auth"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// MsgUserDisabled is returned when a deactivated account logs in.
const MsgUserDisabled = "Usuario desactivado"

// AuthService issues tokens for valid credentials.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// Login checks the password and signs a token. Unknown users and wrong
// passwords share one message.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.NewAuthenticationError(apperrors.MsgInvalidCredentials, nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewAuthenticationError(apperrors.MsgInvalidCredentials, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, apperrors.NewAuthenticationError(apperrors.MsgInvalidCredentials, nil)
	}
	if !user.Active {
		return nil, apperrors.NewAuthenticationError(MsgUserDisabled, nil)
	}

	token, _, err := s.tokens.GenerateToken(user.User.Username, user.User.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("login", zap.String("username", user.User.Username), zap.String("role", string(user.User.Role)))

	// The login body carries no id or email; /api/auth/me does.
	return &dto.LoginResponse{
		Token: token,
		User: domain.User{
			Username: user.User.Username,
			FullName: user.User.FullName,
			Role:     user.User.Role,
		},
	}, nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(principal *auth.Principal) domain.User {
	return principal.User.User
}
