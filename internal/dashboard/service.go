package dashboard

import (
	"context"
	"time"
)

// Summary is the landing-page widget payload.
type Summary struct {
	ActiveEmployees int `json:"active_employees"`
	Departments     int `json:"departments"`
	PendingRequests int `json:"pending_requests"`
	// RecentHires counts employees hired in the last 30 days.
	RecentHires int `json:"recent_hires"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Repository provides the counts behind the summary.
type Repository interface {
	CountActiveEmployees(ctx context.Context) (int, error)
	CountActiveDepartments(ctx context.Context) (int, error)
	CountPendingRequests(ctx context.Context) (int, error)
	CountHiresSince(ctx context.Context, since time.Time) (int, error)
}

const recentHireWindow = 30 * 24 * time.Hour

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	now := s.clock().UTC()

	employees, err := s.repo.CountActiveEmployees(ctx)
	if err != nil {
		return Summary{}, err
	}
	departments, err := s.repo.CountActiveDepartments(ctx)
	if err != nil {
		return Summary{}, err
	}
	pending, err := s.repo.CountPendingRequests(ctx)
	if err != nil {
		return Summary{}, err
	}
	hires, err := s.repo.CountHiresSince(ctx, now.Add(-recentHireWindow))
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		ActiveEmployees: employees,
		Departments:     departments,
		PendingRequests: pending,
		RecentHires:     hires,
		GeneratedAt:     now,
	}, nil
}
