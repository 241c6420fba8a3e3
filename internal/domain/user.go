package domain

// User is the authenticated staff member as returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	Email    string `json:"email,omitempty"`
}

// Valid reports whether the user carries enough identity to back a session.
func (u *User) Valid() bool {
	return u != nil && u.Username != ""
}

// Clone returns an independent copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
