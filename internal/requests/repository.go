package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// NOTE: This repository assumes the following tables exist:
// - requests
// - request_approvals (immutable append-only)
//
// request_approvals carries the full decision history; the denormalized
// decided_* columns on requests exist for cheap listing.

const requestColumns = `id, number, employee_id, type, title, body, priority,
amount_minor, status, submitted_by, COALESCE(decided_by::text, ''), decided_at,
decision_note, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (Request, error) {
	var r Request
	var decidedAt sql.NullTime
	err := row.Scan(
		&r.ID,
		&r.Number,
		&r.EmployeeID,
		&r.Type,
		&r.Title,
		&r.Body,
		&r.Priority,
		&r.AmountMinor,
		&r.Status,
		&r.SubmittedBy,
		&r.DecidedBy,
		&decidedAt,
		&r.DecisionNote,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return Request{}, err
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		r.DecidedAt = &t
	}
	return r, nil
}

func getRequest(ctx context.Context, db *sql.DB, id string) (Request, error) {
	q := "SELECT " + requestColumns + " FROM requests WHERE id = $1"
	r, err := scanRequest(db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return r, err
}

func lockRequest(ctx context.Context, tx *sql.Tx, id string) (Request, error) {
	// Lock the row to serialize concurrent decisions on the same request.
	q := "SELECT " + requestColumns + " FROM requests WHERE id = $1 FOR UPDATE"
	r, err := scanRequest(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return r, err
}

func insertRequest(ctx context.Context, db *sql.DB, r Request) error {
	const q = `
INSERT INTO requests (id, number, employee_id, type, title, body, priority,
	amount_minor, status, submitted_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err := db.ExecContext(ctx, q,
		r.ID, r.Number, r.EmployeeID, r.Type, r.Title, r.Body, r.Priority,
		r.AmountMinor, r.Status, r.SubmittedBy, r.CreatedAt, r.UpdatedAt)
	return err
}

func updateRequestStatus(ctx context.Context, tx *sql.Tx, r Request) error {
	const q = `
UPDATE requests
SET status = $2, decided_by = NULLIF($3, '')::uuid, decided_at = $4,
	decision_note = $5, updated_at = $6
WHERE id = $1
`
	_, err := tx.ExecContext(ctx, q,
		r.ID, r.Status, r.DecidedBy, r.DecidedAt, r.DecisionNote, r.UpdatedAt)
	return err
}

func insertApproval(ctx context.Context, tx *sql.Tx, a Approval) error {
	const q = `
INSERT INTO request_approvals (id, request_id, approver_id, approver_role, decision, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := tx.ExecContext(ctx, q,
		a.ID, a.RequestID, a.ApproverID, a.ApproverRole, a.Decision, a.Note, a.CreatedAt)
	return err
}

func listApprovals(ctx context.Context, db *sql.DB, requestID string) ([]Approval, error) {
	const q = `
SELECT id, request_id, approver_id, approver_role, decision, note, created_at
FROM request_approvals
WHERE request_id = $1
ORDER BY created_at
`
	rows, err := db.QueryContext(ctx, q, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Approval{}
	for rows.Next() {
		var a Approval
		if err := rows.Scan(&a.ID, &a.RequestID, &a.ApproverID, &a.ApproverRole,
			&a.Decision, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func listRequests(ctx context.Context, db *sql.DB, f ListFilter) ([]Request, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM requests WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(
		"SELECT %s FROM requests WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		requestColumns, cond, len(args)-1, len(args))

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}
