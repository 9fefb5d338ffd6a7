package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"qaforum/api/internal/models"
)

type PostgresSessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, session models.Session) error {
	const query = `
		INSERT INTO user_sessions (
			id, user_id, token_hash, issued_at, expires_at, logged_out_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.IssuedAt,
		session.ExpiresAt,
		session.LoggedOutAt,
	)
	return constraintError(err)
}

func (r *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash []byte) (models.Session, bool, error) {
	const query = `
		SELECT id, user_id, token_hash, issued_at, expires_at, logged_out_at
		FROM user_sessions
		WHERE token_hash = $1
	`
	return r.findOne(ctx, query, tokenHash)
}

func (r *PostgresSessionRepository) LockByTokenHash(ctx context.Context, tokenHash []byte) (models.Session, bool, error) {
	const query = `
		SELECT id, user_id, token_hash, issued_at, expires_at, logged_out_at
		FROM user_sessions
		WHERE token_hash = $1
		FOR UPDATE
	`
	return r.findOne(ctx, query, tokenHash)
}

// MarkLoggedOut never overwrites an existing logged_out_at.
func (r *PostgresSessionRepository) MarkLoggedOut(ctx context.Context, id string, at time.Time) error {
	const query = `
		UPDATE user_sessions
		SET logged_out_at = $2,
		    expires_at = LEAST(expires_at, $2)
		WHERE id = $1 AND logged_out_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, id, at)
	return err
}

func (r *PostgresSessionRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return count(ctx, r.db, `
		SELECT COUNT(*) FROM user_sessions
		WHERE logged_out_at IS NULL AND expires_at > $1
	`, now)
}

func (r *PostgresSessionRepository) findOne(ctx context.Context, query string, tokenHash []byte) (models.Session, bool, error) {
	row := r.db.QueryRow(ctx, query, tokenHash)
	var session models.Session
	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.IssuedAt,
		&session.ExpiresAt,
		&session.LoggedOutAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, false, nil
		}
		return models.Session{}, false, err
	}
	return session, true, nil
}
