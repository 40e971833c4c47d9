package dashboard

import (
	"context"
	"time"
)

// MemoryRepo returns fixed counts. Tests only.
type MemoryRepo struct {
	Employees   int
	Departments int
	Pending     int
	HireDates   []time.Time
}

func (r *MemoryRepo) CountActiveEmployees(ctx context.Context) (int, error) {
	return r.Employees, nil
}

func (r *MemoryRepo) CountActiveDepartments(ctx context.Context) (int, error) {
	return r.Departments, nil
}

func (r *MemoryRepo) CountPendingRequests(ctx context.Context) (int, error) {
	return r.Pending, nil
}

func (r *MemoryRepo) CountHiresSince(ctx context.Context, since time.Time) (int, error) {
	n := 0
	for _, d := range r.HireDates {
		if !d.Before(since) {
			n++
		}
	}
	return n, nil
}
