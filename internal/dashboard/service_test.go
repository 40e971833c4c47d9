package dashboard

import (
	"context"
	"testing"
	"time"
)

func TestSummary(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	repo := &MemoryRepo{
		Employees:   42,
		Departments: 5,
		Pending:     3,
		HireDates: []time.Time{
			now.Add(-10 * 24 * time.Hour),
			now.Add(-29 * 24 * time.Hour),
			now.Add(-31 * 24 * time.Hour),
		},
	}
	svc := NewService(repo)
	svc.clock = func() time.Time { return now }

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.ActiveEmployees != 42 || sum.Departments != 5 || sum.PendingRequests != 3 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	if sum.RecentHires != 2 {
		t.Fatalf("hires outside the 30-day window must not count, got %d", sum.RecentHires)
	}
	if !sum.GeneratedAt.Equal(now) {
		t.Fatalf("expected generated_at = clock time")
	}
}
