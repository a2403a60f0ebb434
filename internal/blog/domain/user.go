package domain

import "time"

// Role is a flat, two-value role model. There is no hierarchy: authorization
// is a plain equality check against one of these values.
type Role string

const (
	RoleUser      Role = "User"
	RoleModerator Role = "Moderator"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id encoded
	Role         Role
	CreatedAt    time.Time
}
