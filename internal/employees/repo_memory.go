package employees

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory repository for tests and early development.
type MemoryRepo struct {
	mu    sync.Mutex
	items map[string]Employee
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Employee{}}
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Employee, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]Employee, 0, len(r.items))
	for _, e := range r.items {
		if f.ActiveOnly && !e.Active {
			continue
		}
		if f.DepartmentID != "" && e.DepartmentID != f.DepartmentID {
			continue
		}
		if f.Search != "" && !matches(e, f.Search) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })

	total := len(matched)
	if f.Offset >= total {
		return []Employee{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func matches(e Employee, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(e.Code), q) ||
		strings.Contains(strings.ToLower(e.FirstName), q) ||
		strings.Contains(strings.ToLower(e.LastName), q) ||
		strings.Contains(strings.ToLower(e.Email), q)
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) Create(ctx context.Context, e Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Code, e.Code) {
			return ErrCodeTaken
		}
	}
	r.items[e.ID] = e
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, e Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return ErrNotFound
	}
	r.items[e.ID] = e
	return nil
}
