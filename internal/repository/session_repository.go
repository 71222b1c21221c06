package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketgate/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a new session row. Sessions are insert-only: no
// update path exists, so a duplicate token hits the unique constraint
// and surfaces as an error.
func (r *SessionRepository) Create(ctx context.Context, session models.Session) error {
	const query = `
		INSERT INTO user_sessions (id, session_id, user_id, user_type, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Token,
		session.UserID,
		session.Category,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return err
}

// GetLive looks up a session by token, filtering by expiry in the same
// read. An expired session and a never-issued token are both
// ErrSessionNotFound; callers cannot tell them apart.
func (r *SessionRepository) GetLive(ctx context.Context, token string) (models.Session, error) {
	const query = `
		SELECT id, session_id, user_id, user_type, created_at, expires_at
		FROM user_sessions
		WHERE session_id = $1 AND expires_at > NOW()
	`
	row := r.pool.QueryRow(ctx, query, token)
	var session models.Session
	if err := row.Scan(
		&session.ID,
		&session.Token,
		&session.UserID,
		&session.Category,
		&session.CreatedAt,
		&session.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

// DeleteByToken removes a session. Deleting a token that does not
// exist is not an error; revocation is idempotent.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	const query = `DELETE FROM user_sessions WHERE session_id = $1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}

// DeleteExpired reaps rows whose expiry has passed and returns the
// number removed. Housekeeping only: validation never depends on this
// running.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM user_sessions WHERE expires_at <= NOW()`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
