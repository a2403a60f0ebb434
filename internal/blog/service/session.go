package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"simpleblog/internal/blog/domain"
	"simpleblog/internal/blog/store"
	"simpleblog/pkg/cryptox"
	"simpleblog/pkg/slogx"
)

// ErrNoSession reports that a session token does not resolve to a live
// session: unknown, revoked, past its lifetime, or idle too long. Handlers
// treat it as "not logged in" and redirect, never as a failure.
var ErrNoSession = errors.New("no live session")

const (
	DefaultSessionTTL  = 7 * 24 * time.Hour
	DefaultIdleTimeout = 30 * time.Minute
)

// SessionService implements the server-side session strategy: the browser
// holds an opaque token in a cookie, the database holds the session record
// keyed by the token's fingerprint.
type SessionService struct {
	Store       store.Store
	TTL         time.Duration // absolute session lifetime
	IdleTimeout time.Duration // sliding inactivity window
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

func (s *SessionService) idleTimeout() time.Duration {
	if s.IdleTimeout <= 0 {
		return DefaultIdleTimeout
	}
	return s.IdleTimeout
}

// Establish mints a fresh session for user and returns the raw token to be
// set as the cookie value. Only the fingerprint is stored.
func (s *SessionService) Establish(ctx context.Context, user domain.User) (string, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return "", err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:           cryptox.FingerprintToken(token),
		UserID:       user.ID,
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    now.Add(s.ttl()),
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to create session", slog.Any("error", err))
		return "", err
	}

	log.Debug("session established", slog.String("user_id", user.ID))
	return token, nil
}

// Current resolves a raw cookie token to the identity behind it, enforcing
// the absolute lifetime and the idle window. A live session gets its
// last-active timestamp bumped.
func (s *SessionService) Current(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrNoSession
	}

	id := cryptox.FingerprintToken(token)
	session, err := s.Store.Sessions().GetSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, ErrNoSession
		}
		return domain.Identity{}, err
	}

	now := time.Now().UTC()
	switch {
	case session.RevokedAt != nil:
		return domain.Identity{}, ErrNoSession
	case now.After(session.ExpiresAt):
		_ = s.Store.Sessions().RevokeSession(ctx, id)
		return domain.Identity{}, ErrNoSession
	case now.Sub(session.LastActiveAt) > s.idleTimeout():
		_ = s.Store.Sessions().RevokeSession(ctx, id)
		return domain.Identity{}, ErrNoSession
	}

	if err := s.Store.Sessions().TouchSession(ctx, id, now); err != nil {
		return domain.Identity{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, ErrNoSession
		}
		return domain.Identity{}, err
	}

	return domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Terminate revokes the session behind the token. Unknown tokens are a
// no-op so logout is always safe to call.
func (s *SessionService) Terminate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().RevokeSession(ctx, cryptox.FingerprintToken(token))
}
