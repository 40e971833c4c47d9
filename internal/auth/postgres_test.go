package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresStore_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	created := time.Unix(1690000000, 0).UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "is_active", "last_login", "created_at"}).
		AddRow("acct-1", "admin@example.com", "hash", "Admin", "admin", true, nil, created)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE lower").WithArgs("admin@example.com").WillReturnRows(rows)

	store := NewPostgresStore(db)
	acct, err := store.FindByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if acct.ID != "acct-1" || acct.Role != "admin" || !acct.Active {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if acct.LastLogin != nil {
		t.Fatalf("expected nil last_login")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStore_FindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "is_active", "last_login", "created_at"}))

	store := NewPostgresStore(db)
	if _, err := store.FindByID(context.Background(), "ghost"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestPostgresStore_SetActiveMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_active").
		WithArgs("ghost", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPostgresStore(db)
	if err := store.SetActive(context.Background(), "ghost", false); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestPostgresStore_UpdateLastLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	at := time.Unix(1700000000, 0).UTC()
	mock.ExpectExec("UPDATE users SET last_login").
		WithArgs("acct-1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPostgresStore(db)
	if err := store.UpdateLastLogin(context.Background(), "acct-1", at); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
