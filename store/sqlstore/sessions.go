package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	auth "github.com/MrEthical07/goIdentity"
)

// Sessions is the PostgreSQL-backed session repository, keyed by
// refresh-token value. Rows past their expiry behave as absent.
type Sessions struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSessions constructs a session repository. ttl bounds how long a
// session is considered live; zero means sessions never expire.
func NewSessions(db *sql.DB, ttl time.Duration) *Sessions {
	return &Sessions{db: db, ttl: ttl}
}

// Create inserts a session row for the refresh token.
func (r *Sessions) Create(ctx context.Context, userID, refreshToken string) error {
	now := time.Now().UTC()
	var expires time.Time
	if r.ttl > 0 {
		expires = now.Add(r.ttl)
	} else {
		expires = now.AddDate(100, 0, 0)
	}

	query := `
		INSERT INTO sessions (id, user_id, refresh_token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		uuid.NewString(), userID, refreshToken, expires, now, now)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the live session for a refresh token, or
// [auth.ErrSessionNotFound].
func (r *Sessions) Find(ctx context.Context, refreshToken string) (*auth.Session, error) {
	query := `
		SELECT id, user_id, refresh_token, created_at, updated_at
		FROM sessions
		WHERE refresh_token = $1 AND expires_at > $2
	`
	s := &auth.Session{}
	err := querier(ctx, r.db).QueryRowContext(ctx, query, refreshToken, time.Now().UTC()).
		Scan(&s.ID, &s.UserID, &s.RefreshToken, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// Delete removes the session for a refresh token. Zero rows deleted is
// reported as [auth.ErrSessionNotFound]; refresh rotation relies on that
// reply to pick exactly one winner among concurrent attempts.
func (r *Sessions) Delete(ctx context.Context, refreshToken string) error {
	query := `
		DELETE FROM sessions
		WHERE refresh_token = $1
	`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, refreshToken)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Intended for a
// periodic sweep; the read path already ignores expired rows.
func (r *Sessions) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := querier(ctx, r.db).ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= $1`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
