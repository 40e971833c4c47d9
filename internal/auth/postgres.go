package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// NOTE: This store assumes the following table exists:
//
//   users (
//     id            UUID PRIMARY KEY,
//     email         VARCHAR UNIQUE NOT NULL,
//     password_hash VARCHAR NOT NULL,
//     name          VARCHAR NOT NULL,
//     role          VARCHAR NOT NULL,
//     is_active     BOOLEAN NOT NULL DEFAULT true,
//     last_login    TIMESTAMPTZ,
//     created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
//   )

const pgUniqueViolation = "23505"

// PostgresStore implements Store over database/sql (pgx stdlib driver).
// Connections are acquired per query, never held across calls.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `id, email, password_hash, name, role, is_active, last_login, created_at`

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Account, error) {
	const q = `
SELECT ` + accountColumns + `
FROM users
WHERE lower(email) = lower($1)
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, email))
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (Account, error) {
	const q = `
SELECT ` + accountColumns + `
FROM users
WHERE id = $1
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, id))
}

func (s *PostgresStore) Create(ctx context.Context, a Account) error {
	const q = `
INSERT INTO users (id, email, password_hash, name, role, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := s.db.ExecContext(ctx, q, a.ID, a.Email, a.PasswordHash, a.Name, a.Role, a.Active, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *PostgresStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const q = `
UPDATE users SET last_login = $2 WHERE id = $1
`
	_, err := s.db.ExecContext(ctx, q, id, at)
	return err
}

func (s *PostgresStore) SetActive(ctx context.Context, id string, active bool) error {
	const q = `
UPDATE users SET is_active = $2 WHERE id = $1
`
	res, err := s.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Account, error) {
	const q = `
SELECT ` + accountColumns + `
FROM users
ORDER BY created_at ASC
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountByRole(ctx context.Context, role string) (int, error) {
	const q = `
SELECT COUNT(*) FROM users WHERE role = $1
`
	var n int
	if err := s.db.QueryRowContext(ctx, q, role).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanOne(row *sql.Row) (Account, error) {
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	var lastLogin sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Role,
		&a.Active,
		&lastLogin,
		&a.CreatedAt,
	); err != nil {
		return Account{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	return a, nil
}
