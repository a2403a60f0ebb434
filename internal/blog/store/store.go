package store

import (
	"context"
	"errors"
	"time"

	"simpleblog/internal/blog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// other relational backends later) implement this. It exposes
// sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Posts() Posts
	Comments() Comments
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this
	// over Tx for multi-step writes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsername is used for the duplicate check at registration.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A unique-constraint violation on email or username surfaces as
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Posts interface {
	// CreatePost inserts a new post.
	CreatePost(ctx context.Context, p domain.Post) error

	// GetPostByID returns a post with its author's username joined in.
	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	// ListPosts returns all posts newest-first by creation time. Rows with
	// equal timestamps tie-break on id descending, which for ULIDs matches
	// insertion order. Comments are not attached here.
	ListPosts(ctx context.Context) ([]domain.Post, error)
}

type Comments interface {
	// CreateComment inserts a new comment. The post existence invariant is
	// enforced by the service inside a transaction, backed by the foreign
	// key constraint.
	CreateComment(ctx context.Context, c domain.Comment) error

	// GetCommentByID returns a comment by id.
	GetCommentByID(ctx context.Context, id string) (domain.Comment, error)

	// DeleteComment removes a comment. Deleting an absent id is a no-op.
	DeleteComment(ctx context.Context, id string) error

	// ListCommentsByPost returns a post's comments oldest-first with the
	// author usernames joined in.
	ListCommentsByPost(ctx context.Context, postID string) ([]domain.Comment, error)
}

type Sessions interface {
	// CreateSession stores a new session record keyed by token fingerprint.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByID returns the session for a token fingerprint.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// TouchSession bumps last_active_at for the idle-timeout window.
	TouchSession(ctx context.Context, id string, at time.Time) error

	// RevokeSession marks the session revoked. Revoking an absent or
	// already-revoked session is a no-op.
	RevokeSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions that are revoked or whose
	// expiry is before the given time. Housekeeping.
	DeleteExpiredSessions(ctx context.Context, before time.Time) error
}
