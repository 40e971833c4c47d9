package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepo persists employees via database/sql.
//
// NOTE: assumes an employees table:
//
//	CREATE TABLE employees (
//	    id            UUID PRIMARY KEY,
//	    code          TEXT NOT NULL UNIQUE,
//	    first_name    TEXT NOT NULL,
//	    last_name     TEXT NOT NULL,
//	    email         TEXT NOT NULL,
//	    phone         TEXT NOT NULL DEFAULT '',
//	    department_id UUID REFERENCES departments(id),
//	    position      TEXT NOT NULL DEFAULT '',
//	    salary_minor  BIGINT NOT NULL DEFAULT 0,
//	    hired_at      TIMESTAMPTZ NOT NULL,
//	    terminated_at TIMESTAMPTZ,
//	    active        BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const employeeColumns = `id, code, first_name, last_name, email, phone,
	COALESCE(department_id::text, ''), position, salary_minor,
	hired_at, terminated_at, active, created_at, updated_at`

const pgUniqueViolation = "23505"

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Employee, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if f.ActiveOnly {
		where = append(where, "active")
	}
	if f.DepartmentID != "" {
		args = append(args, f.DepartmentID)
		where = append(where, fmt.Sprintf("department_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(code ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
			n, n, n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM employees WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM employees WHERE %s ORDER BY code LIMIT $%d OFFSET $%d",
		employeeColumns, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Employee, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (r *PostgresRepo) Create(ctx context.Context, e Employee) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (id, code, first_name, last_name, email, phone,
			department_id, position, salary_minor, hired_at, terminated_at,
			active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.Code, e.FirstName, e.LastName, e.Email, e.Phone,
		e.DepartmentID, e.Position, e.SalaryMinor, e.HiredAt, e.TerminatedAt,
		e.Active, e.CreatedAt, e.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrCodeTaken
	}
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, e Employee) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
			department_id = NULLIF($6, '')::uuid, position = $7, salary_minor = $8,
			terminated_at = $9, active = $10, updated_at = $11
		WHERE id = $1`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone,
		e.DepartmentID, e.Position, e.SalaryMinor,
		e.TerminatedAt, e.Active, e.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var e Employee
	var terminated sql.NullTime
	err := row.Scan(&e.ID, &e.Code, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.DepartmentID, &e.Position, &e.SalaryMinor,
		&e.HiredAt, &terminated, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Employee{}, err
	}
	if terminated.Valid {
		t := terminated.Time
		e.TerminatedAt = &t
	}
	return e, nil
}
