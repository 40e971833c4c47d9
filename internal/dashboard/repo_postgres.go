package dashboard

import (
	"context"
	"database/sql"
	"time"
)

// PostgresRepo reads summary counts straight from the domain tables.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CountActiveEmployees(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM employees WHERE active")
}

func (r *PostgresRepo) CountActiveDepartments(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM departments WHERE active")
}

func (r *PostgresRepo) CountPendingRequests(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM requests WHERE status = 'pending'")
}

func (r *PostgresRepo) CountHiresSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM employees WHERE active AND hired_at >= $1", since,
	).Scan(&n)
	return n, err
}

func (r *PostgresRepo) count(ctx context.Context, query string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}
