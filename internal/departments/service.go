package departments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("departments: not found")
	ErrInvalidInput = errors.New("departments: invalid input")
	ErrCodeTaken    = errors.New("departments: code already exists")
	ErrHasEmployees = errors.New("departments: active employees still assigned")
)

// Repository abstracts data access for departments.
type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Department, error)
	Get(ctx context.Context, id string) (Department, error)
	Create(ctx context.Context, d Department) error
	Update(ctx context.Context, d Department) error
	SetActive(ctx context.Context, id string, active bool) error

	// ActiveEmployeeCount guards deactivation: a department that still has
	// active employees cannot be removed.
	ActiveEmployeeCount(ctx context.Context, id string) (int, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Department, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Get(ctx context.Context, id string) (Department, error) {
	if id == "" {
		return Department{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name, code, managerID, costCenter string) (Department, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return Department{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if code == "" {
		return Department{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	now := s.clock().UTC()
	d := Department{
		ID:         uuid.NewString(),
		Name:       name,
		Code:       code,
		ManagerID:  managerID,
		CostCenter: costCenter,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return Department{}, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Department, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return Department{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Department{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		if strings.TrimSpace(*in.Code) == "" {
			return Department{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
		}
		d.Code = strings.TrimSpace(*in.Code)
	}
	if in.ManagerID != nil {
		d.ManagerID = *in.ManagerID
	}
	if in.CostCenter != nil {
		d.CostCenter = *in.CostCenter
	}
	d.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, d); err != nil {
		return Department{}, err
	}
	return d, nil
}

// Deactivate soft-deletes the department. Departments with active employees
// are refused; reassign or terminate the employees first.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	n, err := s.repo.ActiveEmployeeCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasEmployees
	}
	return s.repo.SetActive(ctx, id, false)
}
