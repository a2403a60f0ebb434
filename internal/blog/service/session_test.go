package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"simpleblog/internal/blog/domain"
	"simpleblog/internal/blog/store"
	"simpleblog/pkg/cryptox"
)

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)

	accounts := &AccountService{Store: st}
	sessions := &SessionService{Store: st}

	user, err := accounts.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("establish and resolve", func(t *testing.T) {
		token, err := sessions.Establish(ctx, user)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		identity, err := sessions.Current(ctx, token)
		require.NoError(t, err)
		require.Equal(t, user.ID, identity.UserID)
		require.Equal(t, "alice", identity.Username)
		require.True(t, identity.IsModerator())
	})

	t.Run("only the fingerprint is stored", func(t *testing.T) {
		token, err := sessions.Establish(ctx, user)
		require.NoError(t, err)

		_, err = st.Sessions().GetSessionByID(ctx, token)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Sessions().GetSessionByID(ctx, cryptox.FingerprintToken(token))
		require.NoError(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := sessions.Current(ctx, "")
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := sessions.Current(ctx, "not-a-real-token")
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("terminate revokes", func(t *testing.T) {
		token, err := sessions.Establish(ctx, user)
		require.NoError(t, err)

		require.NoError(t, sessions.Terminate(ctx, token))

		_, err = sessions.Current(ctx, token)
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("terminate with empty token is a no-op", func(t *testing.T) {
		require.NoError(t, sessions.Terminate(ctx, ""))
	})
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)

	accounts := &AccountService{Store: st}
	user, err := accounts.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	seedSession := func(t *testing.T, createdAt, lastActiveAt, expiresAt time.Time) string {
		t.Helper()
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			ID:           cryptox.FingerprintToken(token),
			UserID:       user.ID,
			CreatedAt:    createdAt,
			LastActiveAt: lastActiveAt,
			ExpiresAt:    expiresAt,
		}))
		return token
	}

	t.Run("absolute lifetime is enforced", func(t *testing.T) {
		sessions := &SessionService{Store: st}
		now := time.Now().UTC()
		token := seedSession(t, now.Add(-8*24*time.Hour), now, now.Add(-time.Hour))

		_, err := sessions.Current(ctx, token)
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("idle window is enforced", func(t *testing.T) {
		sessions := &SessionService{Store: st, IdleTimeout: 30 * time.Minute}
		now := time.Now().UTC()
		token := seedSession(t, now.Add(-2*time.Hour), now.Add(-time.Hour), now.Add(6*24*time.Hour))

		_, err := sessions.Current(ctx, token)
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("activity slides the idle window", func(t *testing.T) {
		sessions := &SessionService{Store: st, IdleTimeout: 30 * time.Minute}
		now := time.Now().UTC()
		token := seedSession(t, now.Add(-2*time.Hour), now.Add(-20*time.Minute), now.Add(6*24*time.Hour))

		_, err := sessions.Current(ctx, token)
		require.NoError(t, err)

		session, err := st.Sessions().GetSessionByID(ctx, cryptox.FingerprintToken(token))
		require.NoError(t, err)
		require.WithinDuration(t, now, session.LastActiveAt, time.Minute)
	})
}
