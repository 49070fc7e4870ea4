package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/menu-service/internal/domain"
)

// SessionRepository manages session persistence. At most one session row
// exists per user; Replace preserves that invariant under concurrent logins.
type SessionRepository interface {
	// Replace deletes any existing session for the user and inserts the new
	// one inside a single transaction.
	Replace(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, sessionToken string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Replace(ctx context.Context, session *domain.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id=$1`, session.UserID); err != nil {
		return err
	}

	const query = `
        INSERT INTO sessions (user_id, session_token, expires)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, query,
		session.UserID,
		session.SessionToken,
		session.Expires,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *sessionRepository) GetByToken(ctx context.Context, sessionToken string) (*domain.Session, error) {
	const query = `
        SELECT id, user_id, session_token, expires, created_at
        FROM sessions WHERE session_token=$1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, sessionToken).Scan(
		&session.ID,
		&session.UserID,
		&session.SessionToken,
		&session.Expires,
		&session.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
