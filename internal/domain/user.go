package domain

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStock Role = "ESTOQUE"
)

// Session is the authenticated user as returned by POST /auth/login and kept
// in the user_auth cookie.
type Session struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Complete reports whether the record carries both a username and a role.
func (s Session) Complete() bool {
	return s.Username != "" && s.Role != ""
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
