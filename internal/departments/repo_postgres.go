package departments

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// NOTE: This repository assumes the following tables exist:
// - departments
// - employees (for the deactivation guard)

const pgUniqueViolation = "23505"

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const departmentColumns = `id, name, code, COALESCE(manager_id::text, ''), COALESCE(cost_center, ''), is_active, created_at, updated_at`

func (r *PostgresRepo) List(ctx context.Context, includeInactive bool) ([]Department, error) {
	q := `
SELECT ` + departmentColumns + `
FROM departments
`
	if !includeInactive {
		q += `WHERE is_active = true
`
	}
	q += `ORDER BY name ASC
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.ManagerID, &d.CostCenter, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Department, error) {
	const q = `
SELECT ` + departmentColumns + `
FROM departments
WHERE id = $1
`
	var d Department
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.Code, &d.ManagerID, &d.CostCenter, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Department{}, ErrNotFound
		}
		return Department{}, err
	}
	return d, nil
}

func (r *PostgresRepo) Create(ctx context.Context, d Department) error {
	const q = `
INSERT INTO departments (id, name, code, manager_id, cost_center, is_active, created_at, updated_at)
VALUES ($1,$2,$3,NULLIF($4,'')::uuid,$5,$6,$7,$8)
`
	_, err := r.db.ExecContext(ctx, q, d.ID, d.Name, d.Code, d.ManagerID, d.CostCenter, d.Active, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrCodeTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, d Department) error {
	const q = `
UPDATE departments
SET name = $2, code = $3, manager_id = NULLIF($4,'')::uuid, cost_center = $5, updated_at = $6
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, d.ID, d.Name, d.Code, d.ManagerID, d.CostCenter, d.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrCodeTaken
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) SetActive(ctx context.Context, id string, active bool) error {
	const q = `
UPDATE departments SET is_active = $2, updated_at = now() WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ActiveEmployeeCount(ctx context.Context, id string) (int, error) {
	const q = `
SELECT COUNT(*) FROM employees WHERE department_id = $1 AND is_active = true
`
	var n int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
