package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"simpleblog/internal/blog/domain"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &AccountService{Store: newTestStore(t)}

	t.Run("first user becomes moderator", func(t *testing.T) {
		user, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, domain.RoleModerator, user.Role)
		require.NotEmpty(t, user.ID)
		require.NotContains(t, user.PasswordHash, "secret1")
	})

	t.Run("second user is a plain user", func(t *testing.T) {
		user, err := svc.Register(ctx, "bob", "bob@example.com", "secret2")
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("email is normalised to lower case", func(t *testing.T) {
		user, err := svc.Register(ctx, "carol", "Carol@Example.com", "secret3")
		require.NoError(t, err)
		require.Equal(t, "carol@example.com", user.Email)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice2", "alice@example.com", "secret1")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other@example.com", "secret1")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("validation errors", func(t *testing.T) {
		cases := []struct {
			name     string
			username string
			email    string
			password string
			want     error
		}{
			{"username too short", "ab", "x@example.com", "secret1", ErrInvalidUsername},
			{"username too long", strings.Repeat("a", 51), "x@example.com", "secret1", ErrInvalidUsername},
			{"bad email", "dave", "not-an-email", "secret1", ErrInvalidEmail},
			{"empty email", "dave", "", "secret1", ErrInvalidEmail},
			{"password too short", "dave", "dave@example.com", "12345", ErrInvalidPassword},
			{"password too long", "dave", "dave@example.com", strings.Repeat("p", 101), ErrInvalidPassword},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
				require.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &AccountService{Store: newTestStore(t)}

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("email lookup is case insensitive", func(t *testing.T) {
		user, err := svc.Login(ctx, "Alice@Example.COM", "secret1")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
