package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("employees: not found")
	ErrInvalidInput = errors.New("employees: invalid input")
	ErrCodeTaken    = errors.New("employees: code already exists")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Repository abstracts data access for employees.
type Repository interface {
	List(ctx context.Context, f ListFilter) ([]Employee, int, error)
	Get(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, e Employee) error
	Update(ctx context.Context, e Employee) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// List returns a page of employees plus the total match count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Employee, int, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	if id == "" {
		return Employee{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Employee, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	required := []struct{ field, val string }{
		{"code", in.Code},
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"email", in.Email},
	}
	for _, r := range required {
		if r.val == "" {
			return Employee{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, r.field)
		}
	}
	if in.SalaryMinor < 0 {
		return Employee{}, fmt.Errorf("%w: salary_minor must not be negative", ErrInvalidInput)
	}

	now := s.clock().UTC()
	hired := in.HiredAt
	if hired.IsZero() {
		hired = now
	}
	e := Employee{
		ID:           uuid.NewString(),
		Code:         in.Code,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		DepartmentID: in.DepartmentID,
		Position:     strings.TrimSpace(in.Position),
		SalaryMinor:  in.SalaryMinor,
		HiredAt:      hired.UTC(),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Employee, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return Employee{}, fmt.Errorf("%w: first_name is required", ErrInvalidInput)
		}
		e.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		if strings.TrimSpace(*in.LastName) == "" {
			return Employee{}, fmt.Errorf("%w: last_name is required", ErrInvalidInput)
		}
		e.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return Employee{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
		}
		e.Email = email
	}
	if in.Phone != nil {
		e.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.DepartmentID != nil {
		e.DepartmentID = *in.DepartmentID
	}
	if in.Position != nil {
		e.Position = strings.TrimSpace(*in.Position)
	}
	if in.SalaryMinor != nil {
		if *in.SalaryMinor < 0 {
			return Employee{}, fmt.Errorf("%w: salary_minor must not be negative", ErrInvalidInput)
		}
		e.SalaryMinor = *in.SalaryMinor
	}
	e.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Terminate marks the employee inactive and records the termination time.
// Records are kept; employees are never hard-deleted.
func (s *Service) Terminate(ctx context.Context, id string) (Employee, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if !e.Active {
		return e, nil
	}
	now := s.clock().UTC()
	e.Active = false
	e.TerminatedAt = &now
	e.UpdatedAt = now
	if err := s.repo.Update(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}
