package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	auth "github.com/MrEthical07/goIdentity"
)

func newSessionsWithMock(t *testing.T) (*Sessions, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSessions(db, 30*24*time.Hour), mock, db
}

func TestSessionsCreate_Success(t *testing.T) {
	repo, mock, db := newSessionsWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+sessions\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*$`

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "u1", "tok123", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), "u1", "tok123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionsFind_NotFound(t *testing.T) {
	repo, mock, db := newSessionsWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\b.*FROM\s+sessions\s+WHERE\s+refresh_token\s*=\s*\$1\b`

	mock.ExpectQuery(q).
		WithArgs("gone", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "gone")
	if !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionsDelete_ZeroRows(t *testing.T) {
	repo, mock, db := newSessionsWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+sessions\s+WHERE\s+refresh_token\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "gone")
	if !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionsDelete_DBError(t *testing.T) {
	repo, mock, db := newSessionsWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+sessions\b`

	mock.ExpectExec(q).
		WithArgs("tok123").
		WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), "tok123")
	if err == nil || errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
