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

// Users is the PostgreSQL-backed user repository.
type Users struct {
	db *sql.DB
}

// NewUsers constructs a user repository bound to db.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

const userColumns = `id, email, password_hash, full_name, verified, created_at, updated_at`

func scanUser(row *sql.Row) (*auth.User, error) {
	u := &auth.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// FindByEmail returns the user row for an email, or [auth.ErrUserNotFound].
func (r *Users) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return scanUser(querier(ctx, r.db).QueryRowContext(ctx, query, email))
}

// FindByID returns the user row for an id, or [auth.ErrUserNotFound].
func (r *Users) FindByID(ctx context.Context, id string) (*auth.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(querier(ctx, r.db).QueryRowContext(ctx, query, id))
}

// Create inserts a new user row. A unique-email violation surfaces as
// [auth.ErrUserExists]; the engine normally pre-checks, so this is the
// backstop for concurrent registrations.
func (r *Users) Create(ctx context.Context, input auth.CreateUserInput) (*auth.User, error) {
	now := time.Now().UTC()
	u := &auth.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FullName:     input.FullName,
		Verified:     input.Verified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO users (id, email, password_hash, full_name, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Verified, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, auth.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// SetVerified flips the verified flag for a user.
func (r *Users) SetVerified(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET verified = TRUE, updated_at = $2
		WHERE id = $1
	`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
