package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/navigation"
	"github.com/spec-kit/sojus-client/internal/session"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// AuthService backs the login screen and the drawer header.
type AuthService struct {
	sessions  *session.Manager
	gateway   *gateway.Client
	navigator *navigation.Navigator
	logger    *zap.Logger
}

// Profile is the signed-in user as confirmed by the server.
type Profile struct {
	User      *domain.User
	ExpiresAt *time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps Dependencies) *AuthService {
	return &AuthService{
		sessions:  deps.Sessions,
		gateway:   deps.Gateway,
		navigator: deps.Navigator,
		logger:    deps.Logger.Named("auth"),
	}
}

// Login signs in. Blank credentials are rejected without a request.
func (s *AuthService) Login(ctx context.Context, username, password string) session.LoginResult {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.LoginResult{
			Message: MsgCredentialsRequired,
			Err:     apperrors.NewValidationError(MsgCredentialsRequired, nil),
		}
	}
	return s.sessions.Login(ctx, username, password)
}

// Logout signs out. The session ends anonymous even when the error is non-nil.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// Current returns the session snapshot.
func (s *AuthService) Current() domain.Session {
	return s.sessions.Snapshot()
}

// Views returns the drawer entries of the current session.
func (s *AuthService) Views() []navigation.Entry {
	return s.navigator.Drawer(s.sessions.Snapshot())
}

// Home returns the route the current session starts on.
func (s *AuthService) Home() navigation.Route {
	return s.navigator.Home(s.sessions.Snapshot())
}

// Profile asks the server who the token belongs to. A rejected token ends the
// session through the gateway.
func (s *AuthService) Profile(ctx context.Context) (*Profile, error) {
	current := s.sessions.Snapshot()
	if !current.Authenticated() {
		return nil, apperrors.NewUnauthorized(MsgNotSignedIn)
	}
	user, err := s.gateway.Auth.Me(ctx)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	profile := &Profile{User: user}
	if info, err := gateway.InspectToken(current.Token); err == nil && info.ExpiresAt != nil {
		exp := info.ExpiresAt.Time
		profile.ExpiresAt = &exp
	} else if err != nil {
		s.logger.Debug("token is not a readable JWT", zap.Error(err))
	}
	return profile, nil
}
