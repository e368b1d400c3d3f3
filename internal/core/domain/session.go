package domain

import "time"

// Session is the client-held proof of authentication. Token is an opaque
// bearer credential; its internal structure is an implementation detail of
// the auth service and must not be parsed by consumers.
//
// Role is a snapshot taken at issuance time. A server-side role change is
// tolerated as stale until the next login.
type Session struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Role    Role      `json:"role"`
	LoginAt time.Time `json:"login_at"`
	Token   string    `json:"token"`
}

// IsAdmin reports whether the session was issued for an admin account.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
