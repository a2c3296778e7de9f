package sqlstore

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/MrEthical07/goIdentity/store/sqlstore/migrations"
)

// Store bundles the SQL-backed repositories and their TxRunner over one
// *sql.DB, so callers wire a single value into the engine builder.
type Store struct {
	Users         *Users
	Sessions      *Sessions
	Confirmations *Confirmations
	Tx            *TxRunner
}

// Options carries the retention windows applied by the repositories.
type Options struct {
	// SessionTTL bounds refresh-session lifetime. Zero disables expiry.
	SessionTTL time.Duration
	// ConfirmationTTL bounds confirmation-token lifetime. Zero disables expiry.
	ConfirmationTTL time.Duration
}

// New builds a Store over an already-open database handle.
func New(db *sql.DB, opts Options) *Store {
	return &Store{
		Users:         NewUsers(db),
		Sessions:      NewSessions(db, opts.SessionTTL),
		Confirmations: NewConfirmations(db, opts.ConfirmationTTL),
		Tx:            NewTxRunner(db),
	}
}

// Open connects to a PostgreSQL DSN through the pgx stdlib driver and
// verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
