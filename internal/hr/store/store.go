package store

import (
	"context"

	"hrhub/internal/hr/models"
)

// EmployeeStore is the persistence boundary for authoritative employee
// records. Implementations return sentinel.ErrNotFound for missing IDs.
type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (models.Employee, error)
	// List returns one page of employees filtered by country (empty country
	// means all), plus the total row count for pagination metadata.
	List(ctx context.Context, country string, page, perPage int) ([]models.Employee, int, error)
}
