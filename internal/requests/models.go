package requests

import "time"

// Request is an employee-submitted ticket that walks a small state machine:
//
//	pending -> approved | rejected   (by an approver)
//	pending -> canceled              (by the submitter)
//
// Decided requests are terminal; the decision history lives in
// request_approvals and is append-only.
type Request struct {
	ID         string `json:"id" db:"id"`
	Number     string `json:"number" db:"number"`
	EmployeeID string `json:"employee_id" db:"employee_id"`

	Type     RequestType `json:"type" db:"type"`
	Title    string      `json:"title" db:"title"`
	Body     string      `json:"body,omitempty" db:"body"`
	Priority Priority    `json:"priority" db:"priority"`

	// AmountMinor is set for expense-type requests, in minor units.
	AmountMinor int64 `json:"amount_minor,omitempty" db:"amount_minor"`

	Status Status `json:"status" db:"status"`

	// SubmittedBy is the account that filed the request; it may differ from
	// the employee the request is about (HR files on behalf of employees).
	SubmittedBy string `json:"submitted_by" db:"submitted_by"`

	DecidedBy    string     `json:"decided_by,omitempty" db:"decided_by"`
	DecidedAt    *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	DecisionNote string     `json:"decision_note,omitempty" db:"decision_note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type RequestType string

const (
	TypeLeave     RequestType = "leave"
	TypeExpense   RequestType = "expense"
	TypeEquipment RequestType = "equipment"
	TypeOther     RequestType = "other"
)

func ValidType(t RequestType) bool {
	switch t {
	case TypeLeave, TypeExpense, TypeEquipment, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Approval is an immutable record of a decision on a request.
type Approval struct {
	ID           string    `json:"id" db:"id"`
	RequestID    string    `json:"request_id" db:"request_id"`
	ApproverID   string    `json:"approver_id" db:"approver_id"`
	ApproverRole string    `json:"approver_role" db:"approver_role"`
	Decision     Status    `json:"decision" db:"decision"`
	Note         string    `json:"note,omitempty" db:"note"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateInput carries the fields callers may set on a new request.
type CreateInput struct {
	EmployeeID  string      `json:"employee_id"`
	Type        RequestType `json:"type"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	Priority    Priority    `json:"priority"`
	AmountMinor int64       `json:"amount_minor"`
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status     Status
	EmployeeID string
	Limit      int
	Offset     int
}
