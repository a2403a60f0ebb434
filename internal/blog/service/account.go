package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"simpleblog/internal/blog/domain"
	"simpleblog/internal/blog/store"
	"simpleblog/pkg/cryptox"
	"simpleblog/pkg/idx"
	"simpleblog/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two, so the login form never leaks
	// which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken      = errors.New("email is already registered")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrInvalidUsername = errors.New("username must be 3 to 50 characters")
	ErrInvalidEmail    = errors.New("email address is not valid")
	ErrInvalidPassword = errors.New("password must be 6 to 100 characters")
)

type AccountService struct {
	Store store.Store
}

// Register creates a new user from the registration form fields. The first
// user ever registered becomes a Moderator; everyone after that is a plain
// User. Duplicate email or username comes back as a typed error, never as a
// raw constraint failure.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if n := len(username); n < 3 || n > 50 {
		return domain.User{}, ErrInvalidUsername
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.User{}, ErrInvalidEmail
	}
	if n := len(password); n < 6 || n > 100 {
		return domain.User{}, ErrInvalidPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Explicit duplicate checks give field-level errors; the unique
		// constraints below remain the backstop for concurrent registrations.
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if empty {
			user.Role = domain.RoleModerator
		}

		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent registration.
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Login checks the credentials and returns the matching user. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Debug("login succeeded", slog.String("user_id", user.ID))
	return user, nil
}
