package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hr-platform/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("requests: not found")
	ErrInvalidInput = errors.New("requests: invalid input")

	// ErrNotPending is returned when deciding or canceling a request that
	// already reached a terminal status.
	ErrNotPending = errors.New("requests: request is not pending")

	// ErrNotOwner is returned when someone other than the submitter tries
	// to cancel a pending request.
	ErrNotOwner = errors.New("requests: only the submitter may cancel")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service provides request submission and the approval workflow.
//
// Workflow invariants:
// - Only pending requests can be approved, rejected or canceled
// - Every decision writes an approval record in the same transaction
//   as the status change
// - Approval records are append-only
type Service struct {
	db *sql.DB
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

// WithClock overrides the time source. Tests only.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

func (s *Service) Create(ctx context.Context, submittedBy string, in CreateInput) (Request, error) {
	in.Title = strings.TrimSpace(in.Title)
	if submittedBy == "" {
		return Request{}, ErrInvalidInput
	}
	if in.EmployeeID == "" {
		return Request{}, fmt.Errorf("%w: employee_id is required", ErrInvalidInput)
	}
	if in.Title == "" {
		return Request{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !ValidType(in.Type) {
		return Request{}, fmt.Errorf("%w: unknown request type", ErrInvalidInput)
	}
	if in.Priority == "" {
		in.Priority = PriorityNormal
	}
	if !ValidPriority(in.Priority) {
		return Request{}, fmt.Errorf("%w: unknown priority", ErrInvalidInput)
	}
	if in.AmountMinor < 0 {
		return Request{}, fmt.Errorf("%w: amount_minor must not be negative", ErrInvalidInput)
	}
	if in.Type == TypeExpense && in.AmountMinor == 0 {
		return Request{}, fmt.Errorf("%w: amount_minor is required for expenses", ErrInvalidInput)
	}

	now := s.clock().UTC()
	r := Request{
		ID:          uuid.NewString(),
		Number:      newNumber(now),
		EmployeeID:  in.EmployeeID,
		Type:        in.Type,
		Title:       in.Title,
		Body:        strings.TrimSpace(in.Body),
		Priority:    in.Priority,
		AmountMinor: in.AmountMinor,
		Status:      StatusPending,
		SubmittedBy: submittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := insertRequest(ctx, s.db, r); err != nil {
		return Request{}, err
	}
	return r, nil
}

// newNumber builds a human-readable reference like REQ-20260830-1A2B3C4D.
// Uniqueness comes from the uuid fragment; the date is for humans.
func newNumber(now time.Time) string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("REQ-%s-%s", now.Format("20060102"), frag)
}

func (s *Service) Get(ctx context.Context, id string) (Request, []Approval, error) {
	if id == "" {
		return Request{}, nil, ErrInvalidInput
	}
	r, err := getRequest(ctx, s.db, id)
	if err != nil {
		return Request{}, nil, err
	}
	approvals, err := listApprovals(ctx, s.db, id)
	if err != nil {
		return Request{}, nil, err
	}
	return r, approvals, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Request, int, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return listRequests(ctx, s.db, f)
}

// Approve moves a pending request to approved and records the decision.
func (s *Service) Approve(ctx context.Context, id, approverID, approverRole, note string) (Request, error) {
	return s.decide(ctx, id, approverID, approverRole, note, StatusApproved)
}

// Reject moves a pending request to rejected and records the decision.
func (s *Service) Reject(ctx context.Context, id, approverID, approverRole, note string) (Request, error) {
	return s.decide(ctx, id, approverID, approverRole, note, StatusRejected)
}

func (s *Service) decide(ctx context.Context, id, approverID, approverRole, note string, decision Status) (Request, error) {
	if id == "" || approverID == "" {
		return Request{}, ErrInvalidInput
	}

	now := s.clock().UTC()
	var out Request

	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		r, err := lockRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		if r.Status != StatusPending {
			return ErrNotPending
		}

		a := Approval{
			ID:           uuid.NewString(),
			RequestID:    r.ID,
			ApproverID:   approverID,
			ApproverRole: approverRole,
			Decision:     decision,
			Note:         note,
			CreatedAt:    now,
		}
		if err := insertApproval(ctx, tx, a); err != nil {
			return err
		}

		r.Status = decision
		r.DecidedBy = approverID
		r.DecidedAt = &now
		r.DecisionNote = note
		r.UpdatedAt = now
		if err := updateRequestStatus(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return Request{}, err
	}
	return out, nil
}

// Cancel withdraws a pending request. Only the submitter may cancel;
// no approval record is written since nothing was decided.
func (s *Service) Cancel(ctx context.Context, id, actorID string) (Request, error) {
	if id == "" || actorID == "" {
		return Request{}, ErrInvalidInput
	}

	now := s.clock().UTC()
	var out Request

	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		r, err := lockRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		if r.Status != StatusPending {
			return ErrNotPending
		}
		if r.SubmittedBy != actorID {
			return ErrNotOwner
		}

		r.Status = StatusCanceled
		r.UpdatedAt = now
		if err := updateRequestStatus(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return Request{}, err
	}
	return out, nil
}
