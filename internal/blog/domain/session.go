package domain

import "time"

// Session is the server-side record behind a logged-in browser. The ID is
// the SHA-256 fingerprint of the opaque token held in the client's cookie,
// never the token itself.
type Session struct {
	ID           string
	UserID       string
	CreatedAt    time.Time
	LastActiveAt time.Time
	ExpiresAt    time.Time
	RevokedAt    *time.Time
}

// Identity is the authenticated user information attached to a request.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

// IsModerator reports whether the identity may create posts and delete any
// comment.
func (i Identity) IsModerator() bool { return i.Role == RoleModerator }
