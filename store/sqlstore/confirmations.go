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

// Confirmations is the PostgreSQL-backed confirmation-token repository.
// Token values are random UUIDs minted at Create. Rows past their expiry
// behave as absent.
type Confirmations struct {
	db  *sql.DB
	ttl time.Duration
}

// NewConfirmations constructs a confirmation-token repository. ttl bounds
// how long a token stays redeemable; zero means tokens never expire.
func NewConfirmations(db *sql.DB, ttl time.Duration) *Confirmations {
	return &Confirmations{db: db, ttl: ttl}
}

// Create mints a random token value, persists it, and returns it.
func (r *Confirmations) Create(ctx context.Context, userID string, typ auth.ConfirmationTokenType) (string, error) {
	now := time.Now().UTC()
	var expires time.Time
	if r.ttl > 0 {
		expires = now.Add(r.ttl)
	} else {
		expires = now.AddDate(100, 0, 0)
	}
	tokenValue := uuid.NewString()

	query := `
		INSERT INTO confirmation_tokens (token, user_id, token_type, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		tokenValue, userID, string(typ), expires, now, now)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return tokenValue, nil
}

// Find returns the live confirmation token, or [auth.ErrConfirmationInvalid].
func (r *Confirmations) Find(ctx context.Context, tokenValue string) (*auth.ConfirmationToken, error) {
	query := `
		SELECT token, user_id, token_type, created_at, updated_at
		FROM confirmation_tokens
		WHERE token = $1 AND expires_at > $2
	`
	ct := &auth.ConfirmationToken{}
	err := querier(ctx, r.db).QueryRowContext(ctx, query, tokenValue, time.Now().UTC()).
		Scan(&ct.Token, &ct.UserID, &ct.Type, &ct.CreatedAt, &ct.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrConfirmationInvalid
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ct, nil
}

// Delete consumes a confirmation token. Zero rows deleted is reported as
// [auth.ErrConfirmationInvalid], which is what makes redemption
// exactly-once under concurrency.
func (r *Confirmations) Delete(ctx context.Context, tokenValue string) error {
	query := `
		DELETE FROM confirmation_tokens
		WHERE token = $1
	`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, tokenValue)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return auth.ErrConfirmationInvalid
	}
	return nil
}
