package store

import (
	"context"
	"sort"
	"sync"

	"hrhub/internal/hr/models"
	"hrhub/pkg/platform/sentinel"
)

// InMemoryStore implements EmployeeStore in process memory. Used by tests
// and by local runs without Postgres.
type InMemoryStore struct {
	mu        sync.RWMutex
	employees map[int64]models.Employee
	nextID    int64
}

// NewInMemoryStore creates an empty in-memory employee store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		employees: make(map[int64]models.Employee),
		nextID:    1,
	}
}

func (s *InMemoryStore) Create(ctx context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID
	s.nextID++
	s.employees[e.ID] = *e
	return nil
}

func (s *InMemoryStore) Update(ctx context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.employees[e.ID] = *e
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, id int64) (models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return models.Employee{}, sentinel.ErrNotFound
	}
	return e, nil
}

func (s *InMemoryStore) List(ctx context.Context, country string, page, perPage int) ([]models.Employee, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Employee
	for _, e := range s.employees {
		if country == "" || e.Country == country {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := (page - 1) * perPage
	if start >= total {
		return []models.Employee{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}
