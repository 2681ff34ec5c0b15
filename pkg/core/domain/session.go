package domain

// SessionUser is the identity half of a session.
type SessionUser struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session pairs the signed-in user with the bearer credential the server
// issued. A nil *Session means anonymous; a non-nil one always carries both
// halves. Stores never hand out a session with either half missing.
type Session struct {
	User       SessionUser
	Credential string
}

// IsAdmin reports whether the session belongs to an admin. Safe on nil.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == RoleAdmin
}
