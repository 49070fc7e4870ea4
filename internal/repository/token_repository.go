package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/menu-service/internal/domain"
)

// TokenRepository manages one-time code persistence. Rows are owned and
// deleted exclusively through this interface.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	// ConsumeLatest atomically deletes and returns the most recent token row
	// matching code and type. Two concurrent calls on the same code cannot
	// both succeed: the conditional DELETE claims the row in one statement.
	ConsumeLatest(ctx context.Context, code string, tokenType domain.TokenType) (*domain.Token, error)
	DeleteAllOfType(ctx context.Context, userID string, tokenType domain.TokenType) error
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	const query = `
        INSERT INTO tokens (code, type, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		token.Code,
		token.Type,
		token.UserID,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *tokenRepository) ConsumeLatest(ctx context.Context, code string, tokenType domain.TokenType) (*domain.Token, error) {
	const query = `
        DELETE FROM tokens
        WHERE id = (
            SELECT id FROM tokens
            WHERE code=$1 AND type=$2
            ORDER BY created_at DESC
            LIMIT 1
        )
        RETURNING id, code, type, user_id, created_at`

	var token domain.Token
	if err := r.pool.QueryRow(ctx, query, code, tokenType).Scan(
		&token.ID,
		&token.Code,
		&token.Type,
		&token.UserID,
		&token.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCode
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteAllOfType(ctx context.Context, userID string, tokenType domain.TokenType) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM tokens WHERE user_id=$1 AND type=$2`,
		userID, tokenType,
	)
	return err
}
