// Package session owns the client session: it restores the stored credential
// at startup, performs login and logout, and drops the credential when the
// server rejects it.
package session

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/credstore"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/events"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// Authenticator exchanges credentials for a bearer token and its user.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// LoginResult reports the outcome of a login attempt. Failures carry a
// message for display; they are never returned as errors.
type LoginResult struct {
	Success bool
	Message string
	User    *domain.User
	Err     error
}

// Dependencies bundles what a Manager needs.
type Dependencies struct {
	Store         credstore.Store
	Authenticator Authenticator
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// Manager is the single owner of the session. Mutating operations are
// serialized; Snapshot and Token never block on them.
//
// Event handlers run synchronously inside a transition and must not call
// Login, Logout, ForceInvalidate or Bootstrap.
type Manager struct {
	opMu    sync.Mutex
	stateMu sync.RWMutex
	current domain.Session

	store      credstore.Store
	auth       Authenticator
	dispatcher events.Dispatcher
	logger     *zap.Logger

	bootStarted atomic.Bool
	ready       chan struct{}
}

// NewManager builds a Manager in the UNINITIALIZED state.
func NewManager(deps Dependencies) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}
	return &Manager{
		current:    domain.Session{Status: domain.SessionUninitialized},
		store:      deps.Store,
		auth:       deps.Authenticator,
		dispatcher: dispatcher,
		logger:     logger.Named("session"),
		ready:      make(chan struct{}),
	}
}

// SetAuthenticator binds the login endpoint. It exists because the gateway
// and the manager reference each other.
func (m *Manager) SetAuthenticator(auth Authenticator) {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.auth = auth
}

// Subscribe registers handler for a session event type.
func (m *Manager) Subscribe(eventType events.EventType, handler events.EventHandler) {
	m.dispatcher.Subscribe(eventType, handler)
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() domain.Session {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	s := m.current
	s.User = s.User.Clone()
	return s
}

// Token returns the bearer token, or "" when not authenticated.
func (m *Manager) Token() string {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	if m.current.Status != domain.SessionAuthenticated {
		return ""
	}
	return m.current.Token
}

// Bootstrap restores the stored credential. The store is read at most once per
// Manager; concurrent and later callers wait for that read and get the same
// resolved session. A caller whose ctx ends first gets the in-progress state.
func (m *Manager) Bootstrap(ctx context.Context) domain.Session {
	if m.bootStarted.CompareAndSwap(false, true) {
		m.bootstrap(ctx)
		close(m.ready)
		return m.Snapshot()
	}
	select {
	case <-m.ready:
	case <-ctx.Done():
	}
	return m.Snapshot()
}

// Ready is closed once Bootstrap has resolved the session.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

func (m *Manager) bootstrap(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.Snapshot().Status != domain.SessionUninitialized {
		return
	}
	m.transition(ctx, domain.Session{Status: domain.SessionLoading})

	creds, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("stored session unreadable; starting anonymous", zap.Error(err))
		m.transition(ctx, domain.Session{Status: domain.SessionAnonymous})
		return
	}
	if !creds.Complete() {
		m.transition(ctx, domain.Session{Status: domain.SessionAnonymous})
		return
	}
	m.transition(ctx, domain.Session{Token: creds.Token, User: creds.User, Status: domain.SessionAuthenticated})
}

// Login authenticates against the backend and persists the credential. The
// session is unchanged on failure, unless a failed save also leaves the
// previous credential unrecoverable, in which case it ends ANONYMOUS.
func (m *Manager) Login(ctx context.Context, username, password string) LoginResult {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.auth == nil {
		return LoginResult{Message: apperrors.MsgInvalidCredentials, Err: apperrors.NewInternalError(nil)}
	}

	token, user, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.logger.Info("login rejected", zap.String("username", username), zap.Error(err))
		return LoginResult{Message: loginFailureMessage(err), Err: err}
	}
	if token == "" || !user.Valid() {
		err := apperrors.NewAuthenticationError(apperrors.MsgInvalidCredentials, nil)
		return LoginResult{Message: apperrors.MsgInvalidCredentials, Err: err}
	}

	creds := credstore.Credentials{Token: token, User: user}
	if err := m.store.Save(ctx, creds); err != nil {
		m.logger.Error("persisting session failed", zap.Error(err))
		m.rollbackStore(context.WithoutCancel(ctx))
		return LoginResult{Message: apperrors.MsgSessionNotSaved, Err: err}
	}

	m.transition(ctx, domain.Session{Token: token, User: user.Clone(), Status: domain.SessionAuthenticated})
	m.logger.Info("logged in", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return LoginResult{Success: true, User: user.Clone()}
}

// Logout purges the stored credential and ends ANONYMOUS even when the purge
// fails; the purge error is returned for reporting. The purge runs even when
// ctx is already cancelled.
func (m *Manager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	err := m.store.Clear(context.WithoutCancel(ctx))
	if err != nil {
		m.logger.Warn("clearing credential store on logout", zap.Error(err))
	}
	m.transition(ctx, domain.Session{Status: domain.SessionAnonymous})
	return err
}

// ForceInvalidate drops an AUTHENTICATED session after the server rejected its
// credential. It is a no-op in any other state, so concurrent rejections
// collapse into one purge.
func (m *Manager) ForceInvalidate(ctx context.Context) {
	if !m.Snapshot().Authenticated() {
		return
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	prev := m.Snapshot()
	if !prev.Authenticated() {
		return
	}

	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn("clearing credential store on invalidation", zap.Error(err))
	}
	m.transition(ctx, domain.Session{Status: domain.SessionAnonymous})

	username := ""
	if prev.User != nil {
		username = prev.User.Username
	}
	m.logger.Info("session invalidated by server", zap.String("username", username))
	m.publish(ctx, events.Event{
		Type:    events.EventSessionInvalidated,
		Payload: events.SessionInvalidatedPayload{Username: username, Reason: "unauthorized"},
	})
}

// rollbackStore puts the store back in line with the unchanged session after
// a failed save. An AUTHENTICATED session rewrites its own credential; if that
// also fails the store is purged and the session ends ANONYMOUS so the next
// start agrees with memory. Callers hold opMu.
func (m *Manager) rollbackStore(ctx context.Context) {
	prev := m.Snapshot()
	if prev.Authenticated() {
		err := m.store.Save(ctx, credstore.Credentials{Token: prev.Token, User: prev.User})
		if err == nil {
			return
		}
		m.logger.Warn("restoring previous credential after failed save", zap.Error(err))
	}
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("clearing credential store after failed save", zap.Error(err))
	}
	if prev.Authenticated() {
		m.transition(ctx, domain.Session{Status: domain.SessionAnonymous})
	}
}

// transition swaps the session and publishes the change. Callers hold opMu.
func (m *Manager) transition(ctx context.Context, next domain.Session) {
	m.stateMu.Lock()
	prev := m.current
	m.current = next
	m.stateMu.Unlock()

	if prev.Status == next.Status && prev.Token == next.Token {
		return
	}

	payload := events.SessionStatusChangedPayload{From: prev.Status, To: next.Status}
	if next.User != nil {
		payload.Username = next.User.Username
		payload.Role = next.User.Role
	}
	m.publish(ctx, events.Event{Type: events.EventSessionStatusChanged, Payload: payload})
}

func (m *Manager) publish(ctx context.Context, event events.Event) {
	if err := m.dispatcher.Publish(context.WithoutCancel(ctx), event); err != nil {
		m.logger.Warn("session event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

func loginFailureMessage(err error) string {
	if msg := apperrors.ServerMessage(err); msg != "" {
		return msg
	}
	if apperrors.IsAuthentication(err) {
		return apperrors.MessageOf(err, apperrors.MsgInvalidCredentials)
	}
	return apperrors.MsgInvalidCredentials
}
