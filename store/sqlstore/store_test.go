package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	auth "github.com/MrEthical07/goIdentity"
)

// testSchema mirrors the goose migrations in SQLite-compatible form so the
// integration tests run against an in-memory database.
const testSchema = `
CREATE TABLE users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    full_name     TEXT NOT NULL DEFAULT '',
    verified      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMP NOT NULL,
    updated_at    TIMESTAMP NOT NULL
);
CREATE TABLE sessions (
    id            TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL,
    refresh_token TEXT NOT NULL UNIQUE,
    expires_at    TIMESTAMP NOT NULL,
    created_at    TIMESTAMP NOT NULL,
    updated_at    TIMESTAMP NOT NULL
);
CREATE TABLE confirmation_tokens (
    token      TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    token_type TEXT NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// The tx runner and the pool share one connection so the in-memory
	// database is visible to both.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return New(db, Options{
		SessionTTL:      30 * 24 * time.Hour,
		ConfirmationTTL: 24 * time.Hour,
	})
}

func TestUsersCreateAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Users.Create(ctx, auth.CreateUserInput{
		Email:        "a@b.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "A B",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.Verified)

	byEmail, err := store.Users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "$2a$10$hash", byEmail.PasswordHash)

	byID, err := store.Users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", byID.Email)

	_, err = store.Users.FindByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestUsersCreate_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Users.Create(ctx, auth.CreateUserInput{Email: "a@b.com"})
	require.NoError(t, err)

	_, err = store.Users.Create(ctx, auth.CreateUserInput{Email: "a@b.com"})
	assert.ErrorIs(t, err, auth.ErrUserExists)
}

func TestUsersSetVerified(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Users.Create(ctx, auth.CreateUserInput{Email: "a@b.com"})
	require.NoError(t, err)

	require.NoError(t, store.Users.SetVerified(ctx, created.ID))

	got, err := store.Users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	assert.ErrorIs(t, store.Users.SetVerified(ctx, "missing"), auth.ErrUserNotFound)
}

func TestSessionsLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Sessions.Create(ctx, "u1", "tok123"))

	got, err := store.Sessions.Find(ctx, "tok123")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "tok123", got.RefreshToken)

	require.NoError(t, store.Sessions.Delete(ctx, "tok123"))

	// The second delete observes zero rows: exactly one caller wins.
	assert.ErrorIs(t, store.Sessions.Delete(ctx, "tok123"), auth.ErrSessionNotFound)

	_, err = store.Sessions.Find(ctx, "tok123")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestConfirmationsExactlyOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tokenValue, err := store.Confirmations.Create(ctx, "u1", auth.ConfirmationVerification)
	require.NoError(t, err)
	require.NotEmpty(t, tokenValue)

	got, err := store.Confirmations.Find(ctx, tokenValue)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, auth.ConfirmationVerification, got.Type)

	require.NoError(t, store.Confirmations.Delete(ctx, tokenValue))
	assert.ErrorIs(t, store.Confirmations.Delete(ctx, tokenValue), auth.ErrConfirmationInvalid)

	_, err = store.Confirmations.Find(ctx, tokenValue)
	assert.ErrorIs(t, err, auth.ErrConfirmationInvalid)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tokenValue, err := store.Confirmations.Create(ctx, "u1", auth.ConfirmationVerification)
	require.NoError(t, err)

	sentinel := errors.New("boom")
	err = store.Tx.InTx(ctx, func(ctx context.Context) error {
		if err := store.Confirmations.Delete(ctx, tokenValue); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	// The delete rolled back with the rest of the unit of work.
	_, err = store.Confirmations.Find(ctx, tokenValue)
	assert.NoError(t, err)
}

func TestTxRunner_Commit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Users.Create(ctx, auth.CreateUserInput{Email: "a@b.com"})
	require.NoError(t, err)
	tokenValue, err := store.Confirmations.Create(ctx, created.ID, auth.ConfirmationVerification)
	require.NoError(t, err)

	err = store.Tx.InTx(ctx, func(ctx context.Context) error {
		if err := store.Confirmations.Delete(ctx, tokenValue); err != nil {
			return err
		}
		return store.Users.SetVerified(ctx, created.ID)
	})
	require.NoError(t, err)

	got, err := store.Users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	_, err = store.Confirmations.Find(ctx, tokenValue)
	assert.ErrorIs(t, err, auth.ErrConfirmationInvalid)
}

func TestTxRunner_NestedReusesTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Tx.InTx(ctx, func(ctx context.Context) error {
		return store.Tx.InTx(ctx, func(ctx context.Context) error {
			return store.Sessions.Create(ctx, "u1", "tok123")
		})
	})
	require.NoError(t, err)

	_, err = store.Sessions.Find(ctx, "tok123")
	assert.NoError(t, err)
}
