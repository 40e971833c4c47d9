package requests

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db).WithClock(func() time.Time { return testNow }), mock
}

func requestRows(status Status) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "number", "employee_id", "type", "title", "body", "priority",
		"amount_minor", "status", "submitted_by", "decided_by", "decided_at",
		"decision_note", "created_at", "updated_at",
	}).AddRow(
		"req-1", "REQ-20260830-AAAA0000", "emp-1", "leave", "Vacation", "", "normal",
		0, string(status), "acct-1", "", nil, "", testNow, testNow,
	)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newMockService(t)

	cases := []struct {
		name string
		by   string
		in   CreateInput
	}{
		{"missing submitter", "", CreateInput{EmployeeID: "e", Type: TypeLeave, Title: "t"}},
		{"missing employee", "a", CreateInput{Type: TypeLeave, Title: "t"}},
		{"missing title", "a", CreateInput{EmployeeID: "e", Type: TypeLeave}},
		{"bad type", "a", CreateInput{EmployeeID: "e", Type: "vacation?", Title: "t"}},
		{"bad priority", "a", CreateInput{EmployeeID: "e", Type: TypeLeave, Title: "t", Priority: "urgent!"}},
		{"negative amount", "a", CreateInput{EmployeeID: "e", Type: TypeExpense, Title: "t", AmountMinor: -5}},
		{"expense without amount", "a", CreateInput{EmployeeID: "e", Type: TypeExpense, Title: "t"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.by, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreate_InsertsPending(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec("INSERT INTO requests").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r, err := svc.Create(context.Background(), "acct-1", CreateInput{
		EmployeeID: "emp-1",
		Type:       TypeLeave,
		Title:      "  Vacation  ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Status != StatusPending {
		t.Fatalf("new requests must start pending, got %q", r.Status)
	}
	if r.Title != "Vacation" {
		t.Fatalf("expected trimmed title, got %q", r.Title)
	}
	if r.Priority != PriorityNormal {
		t.Fatalf("expected default priority, got %q", r.Priority)
	}
	if len(r.Number) == 0 || r.Number[:4] != "REQ-" {
		t.Fatalf("expected REQ- reference, got %q", r.Number)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApprove_WritesApprovalAndStatusInOneTx(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").
		WithArgs("req-1").
		WillReturnRows(requestRows(StatusPending))
	mock.ExpectExec("INSERT INTO request_approvals").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r, err := svc.Approve(context.Background(), "req-1", "mgr-1", "manager", "ok")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if r.Status != StatusApproved || r.DecidedBy != "mgr-1" || r.DecidedAt == nil {
		t.Fatalf("expected decided request, got %+v", r)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApprove_NonPendingRollsBack(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").
		WithArgs("req-1").
		WillReturnRows(requestRows(StatusApproved))
	mock.ExpectRollback()

	if _, err := svc.Approve(context.Background(), "req-1", "mgr-1", "manager", ""); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReject_Unknown(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").
		WithArgs("req-404").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if _, err := svc.Reject(context.Background(), "req-404", "mgr-1", "manager", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancel_OnlySubmitter(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").
		WithArgs("req-1").
		WillReturnRows(requestRows(StatusPending))
	mock.ExpectRollback()

	if _, err := svc.Cancel(context.Background(), "req-1", "someone-else"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCancel_BySubmitter(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").
		WithArgs("req-1").
		WillReturnRows(requestRows(StatusPending))
	mock.ExpectExec("UPDATE requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r, err := svc.Cancel(context.Background(), "req-1", "acct-1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if r.Status != StatusCanceled {
		t.Fatalf("expected canceled, got %q", r.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDecide_Validation(t *testing.T) {
	svc := NewService((*sql.DB)(nil))

	if _, err := svc.Approve(context.Background(), "", "mgr-1", "manager", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), "req-1", "", "manager", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Cancel(context.Background(), "req-1", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
