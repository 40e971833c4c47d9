package departments

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is a simple in-memory repository for tests and early development.
type MemoryRepo struct {
	mu    sync.Mutex
	items map[string]Department

	// EmployeeCounts lets tests control the deactivation guard.
	EmployeeCounts map[string]int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Department{}, EmployeeCounts: map[string]int{}}
}

func (r *MemoryRepo) List(ctx context.Context, includeInactive bool) ([]Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Department, 0, len(r.items))
	for _, d := range r.items {
		if !includeInactive && !d.Active {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return Department{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) Create(ctx context.Context, d Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Code, d.Code) {
			return ErrCodeTaken
		}
	}
	r.items[d.ID] = d
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, d Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[d.ID]; !ok {
		return ErrNotFound
	}
	r.items[d.ID] = d
	return nil
}

func (r *MemoryRepo) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	d.Active = active
	r.items[id] = d
	return nil
}

func (r *MemoryRepo) ActiveEmployeeCount(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.EmployeeCounts[id], nil
}
