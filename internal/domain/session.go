package domain

// SessionStatus enumerates the lifecycle states of the client session.
type SessionStatus string

const (
	SessionUninitialized SessionStatus = "UNINITIALIZED"
	SessionLoading       SessionStatus = "LOADING"
	SessionAuthenticated SessionStatus = "AUTHENTICATED"
	SessionAnonymous     SessionStatus = "ANONYMOUS"
)

// Session is a point-in-time copy of the client session.
// Status is AUTHENTICATED iff Token is set and User is valid.
type Session struct {
	Token  string
	User   *User
	Status SessionStatus
}

// Authenticated reports whether the snapshot holds a usable credential.
func (s Session) Authenticated() bool {
	return s.Status == SessionAuthenticated
}

// Role returns the role of the signed-in user, or "" when anonymous.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
