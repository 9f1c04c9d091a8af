package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hrhub/internal/hr/models"
	"hrhub/pkg/platform/sentinel"
)

// PostgresStore implements EmployeeStore on PostgreSQL via database/sql
// (lib/pq driver). Country-specific columns live on the same row and are
// simply empty for countries they do not apply to.
type PostgresStore struct {
	db *sql.DB
}

// Schema creates the employees table. Applied at startup; CREATE TABLE IF
// NOT EXISTS keeps it safe to run on every boot.
const Schema = `
CREATE TABLE IF NOT EXISTS employees (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	salary     DOUBLE PRECISION NOT NULL DEFAULT 0,
	country    TEXT NOT NULL,
	ssn        TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	goal       TEXT NOT NULL DEFAULT '',
	tax_id     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_employees_country ON employees (country);
`

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema applies the employees schema.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure employees schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees (name, last_name, salary, country, ssn, address, goal, tax_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		e.Name, e.LastName, e.Salary, e.Country, e.SSN, e.Address, e.Goal, e.TaxID,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, last_name = $3, salary = $4, country = $5,
		    ssn = $6, address = $7, goal = $8, tax_id = $9, updated_at = now()
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		e.ID, e.Name, e.LastName, e.Salary, e.Country, e.SSN, e.Address, e.Goal, e.TaxID,
	)
	if err != nil {
		return fmt.Errorf("update employee %d: %w", e.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (models.Employee, error) {
	query := `
		SELECT id, name, last_name, salary, country, ssn, address, goal, tax_id
		FROM employees WHERE id = $1
	`
	var e models.Employee
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.LastName, &e.Salary, &e.Country, &e.SSN, &e.Address, &e.Goal, &e.TaxID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Employee{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("get employee %d: %w", id, err)
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context, country string, page, perPage int) ([]models.Employee, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM employees WHERE ($1 = '' OR country = $1)`
	if err := s.db.QueryRowContext(ctx, countQuery, country).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	query := `
		SELECT id, name, last_name, salary, country, ssn, address, goal, tax_id
		FROM employees
		WHERE ($1 = '' OR country = $1)
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, country, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(
			&e.ID, &e.Name, &e.LastName, &e.Salary, &e.Country, &e.SSN, &e.Address, &e.Goal, &e.TaxID,
		); err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, total, nil
}
