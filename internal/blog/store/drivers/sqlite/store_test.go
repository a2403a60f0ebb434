package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"simpleblog/internal/blog/domain"
	"simpleblog/internal/blog/store"
	"simpleblog/pkg/idx"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st *Store, username, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)

	t.Run("empty store", func(t *testing.T) {
		empty, err := st.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		_, err = st.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	alice := seedUser(t, st, "alice", "alice@example.com")

	t.Run("round trip", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice.Username, got.Username)

		got, err = st.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		empty, err := st.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})

	t.Run("unique constraints map to ErrAlreadyExists", func(t *testing.T) {
		dup := domain.User{
			ID: idx.New().String(), Username: "alice2", Email: "alice@example.com",
			PasswordHash: "x", Role: domain.RoleUser, CreatedAt: time.Now().UTC(),
		}
		require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

		dup.Username, dup.Email = "alice", "alice2@example.com"
		require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})
}

func TestCommentsRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)
	alice := seedUser(t, st, "alice", "alice@example.com")

	post := domain.Post{
		ID: idx.New().String(), AuthorID: alice.ID,
		Title: "Post", Content: "Body", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Posts().CreatePost(ctx, post))

	t.Run("foreign key rejects orphan comments", func(t *testing.T) {
		orphan := domain.Comment{
			ID: idx.New().String(), PostID: idx.New().String(),
			AuthorID: alice.ID, Content: "lost", CreatedAt: time.Now().UTC(),
		}
		require.Error(t, st.Comments().CreateComment(ctx, orphan))
	})

	t.Run("delete of an absent id is a no-op", func(t *testing.T) {
		require.NoError(t, st.Comments().DeleteComment(ctx, idx.New().String()))
	})

	t.Run("author name is joined in", func(t *testing.T) {
		c := domain.Comment{
			ID: idx.New().String(), PostID: post.ID,
			AuthorID: alice.ID, Content: "hi", CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, st.Comments().CreateComment(ctx, c))

		got, err := st.Comments().GetCommentByID(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", got.AuthorName)
	})
}

func TestSessionsRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)
	alice := seedUser(t, st, "alice", "alice@example.com")

	now := time.Now().UTC()
	live := domain.Session{
		ID: "fp-live", UserID: alice.ID,
		CreatedAt: now, LastActiveAt: now, ExpiresAt: now.Add(time.Hour),
	}
	stale := domain.Session{
		ID: "fp-stale", UserID: alice.ID,
		CreatedAt: now.Add(-2 * time.Hour), LastActiveAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, live))
	require.NoError(t, st.Sessions().CreateSession(ctx, stale))

	t.Run("touch updates last active", func(t *testing.T) {
		at := now.Add(10 * time.Minute)
		require.NoError(t, st.Sessions().TouchSession(ctx, live.ID, at))

		got, err := st.Sessions().GetSessionByID(ctx, live.ID)
		require.NoError(t, err)
		require.WithinDuration(t, at, got.LastActiveAt, time.Second)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		require.NoError(t, st.Sessions().RevokeSession(ctx, live.ID))
		require.NoError(t, st.Sessions().RevokeSession(ctx, live.ID))
		require.NoError(t, st.Sessions().RevokeSession(ctx, "fp-missing"))

		got, err := st.Sessions().GetSessionByID(ctx, live.ID)
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt)
	})

	t.Run("housekeeping removes expired and revoked rows", func(t *testing.T) {
		require.NoError(t, st.Sessions().DeleteExpiredSessions(ctx, now))

		_, err := st.Sessions().GetSessionByID(ctx, stale.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Sessions().GetSessionByID(ctx, live.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
