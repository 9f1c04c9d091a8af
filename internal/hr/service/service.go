// Package service owns employee business logic: persistence through the
// store boundary, and event publishing after each successful mutation.
//
// The store write and the publish are two separate steps. A committed write
// whose publish fails is never rolled back: the authoritative record is the
// source of truth and event delivery is best-effort, bounded by the hub's
// cache TTL.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"hrhub/internal/event"
	"hrhub/internal/hr/models"
	"hrhub/internal/hr/rules"
	"hrhub/internal/hr/store"
)

// Publisher pushes an envelope onto the employee-events queue.
type Publisher interface {
	Publish(ctx context.Context, env event.Envelope) error
}

// Service coordinates employee mutations and event emission.
type Service struct {
	store     store.EmployeeStore
	publisher Publisher
	rules     rules.Provider
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New wires the employee service. publisher may be nil, in which case
// mutations commit without emitting events (useful in tests and local runs
// without a broker).
func New(st store.EmployeeStore, publisher Publisher, opts ...Option) *Service {
	s := &Service{
		store:     st,
		publisher: publisher,
		rules:     rules.NewProvider(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paginate returns one page of employees plus the total matching count.
func (s *Service) Paginate(ctx context.Context, country string, page, perPage int) ([]models.Employee, int, error) {
	return s.store.List(ctx, country, page, perPage)
}

// Get returns a single employee.
func (s *Service) Get(ctx context.Context, id int64) (models.Employee, error) {
	return s.store.Get(ctx, id)
}

// Create persists a new employee and publishes EmployeeCreated.
func (s *Service) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	s.logger.Info("creating employee", "country", e.Country, "name", e.Name)

	if err := s.store.Create(ctx, &e); err != nil {
		return models.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	s.logger.Info("employee created", "id", e.ID)
	s.publish(ctx, event.TypeCreated, e, nil)
	return e, nil
}

// Update applies a partial mutation and publishes EmployeeUpdated with the
// names of fields whose persisted value differs from the submitted value.
// The diff covers submitted fields only, not the full record.
func (s *Service) Update(ctx context.Context, id int64, u models.Update) (models.Employee, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Employee{}, fmt.Errorf("load employee %d: %w", id, err)
	}

	changed := e.Apply(u)
	s.logger.Info("updating employee", "id", id, "changed_fields", changed)

	if err := s.store.Update(ctx, &e); err != nil {
		return models.Employee{}, fmt.Errorf("update employee %d: %w", id, err)
	}

	s.logger.Info("employee updated", "id", id)
	s.publish(ctx, event.TypeUpdated, e, changed)
	return e, nil
}

// Delete removes an employee and publishes EmployeeDeleted carrying the
// pre-delete snapshot, captured before the row is gone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load employee %d: %w", id, err)
	}

	s.logger.Info("deleting employee", "id", id)

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}

	s.logger.Info("employee deleted", "id", id)
	s.publish(ctx, event.TypeDeleted, e, nil)
	return nil
}

// publish emits an envelope for a committed mutation. Failures are logged
// with the full payload for manual replay and never fail the request.
func (s *Service) publish(ctx context.Context, t event.Type, e models.Employee, changedFields []string) {
	if s.publisher == nil {
		return
	}
	if changedFields == nil {
		changedFields = []string{}
	}

	id := e.ID
	env := event.New(t, e.Country, event.Payload{
		EmployeeID:    &id,
		ChangedFields: changedFields,
		Employee:      e.ToCountryMap(s.rules.FieldsFor(e.Country)),
	})

	if err := s.publisher.Publish(ctx, env); err != nil {
		payload, _ := env.Marshal()
		s.logger.Error("failed to publish employee event",
			"event_type", t,
			"event_id", env.EventID,
			"payload", string(payload),
			"error", err,
		)
	}
}
