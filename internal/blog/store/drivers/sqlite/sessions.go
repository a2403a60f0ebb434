package sqlite

import (
	"context"
	"database/sql"
	"time"

	"simpleblog/internal/blog/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at, last_active_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.CreatedAt, s.LastActiveAt, s.ExpiresAt)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, last_active_at, expires_at, revoked_at
		 FROM sessions WHERE id = ?`, id)

	var s domain.Session
	var revoked sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.LastActiveAt, &s.ExpiresAt, &revoked)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return s, nil
}

func (r *sessionsRepo) TouchSession(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_active_at = ? WHERE id = ?`, at, id)
	return err
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		time.Now().UTC(), id)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, before time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ? OR revoked_at IS NOT NULL`, before)
	return err
}
