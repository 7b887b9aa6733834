package model

import "fmt"

// Role is the kind of user a session belongs to.
type Role string

const (
	RoleCoach   Role = "coach"
	RoleStudent Role = "student"
)

// Roles lists every known role in a stable order.
var Roles = []Role{RoleCoach, RoleStudent}

// ParseRole maps a string claim to a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Scope identifies the active session user.
type Scope struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsCoach checks if the scope has coach role
func (s Scope) IsCoach() bool {
	return s.Role == RoleCoach
}

// IsStudent checks if the scope has student role
func (s Scope) IsStudent() bool {
	return s.Role == RoleStudent
}
