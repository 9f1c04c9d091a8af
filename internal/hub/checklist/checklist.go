// Package checklist derives completeness reports from employee snapshots.
// Everything here is pure and deterministic: a report is fully derivable
// from the employee list and the validator registry, which is what makes
// rebuild-from-scratch safe under any event delivery order.
package checklist

import (
	"log/slog"
	"math"

	"hrhub/internal/hub/models"
	"hrhub/internal/hub/validator"
)

// EmployeeChecklist is the per-employee completeness result.
type EmployeeChecklist struct {
	EmployeeID      *int64                 `json:"employee_id"`
	Name            string                 `json:"name"`
	Country         string                 `json:"country"`
	CompletedFields int                    `json:"completed_fields"`
	TotalFields     int                    `json:"total_fields"`
	CompletionRate  float64                `json:"completion_rate"`
	IsComplete      bool                   `json:"is_complete"`
	Fields          validator.FieldResults `json:"fields"`
}

// Summary aggregates field counts across a country's employees.
// OverallCompletion is a weighted average over individual fields (summed
// numerators and denominators), not an average of per-employee rates.
type Summary struct {
	TotalEmployees    int     `json:"total_employees"`
	TotalFields       int     `json:"total_fields"`
	CompletedFields   int     `json:"completed_fields"`
	IncompleteFields  int     `json:"incomplete_fields"`
	OverallCompletion float64 `json:"overall_completion"`
}

// Report is the cached country-level aggregate.
type Report struct {
	Summary   Summary             `json:"summary"`
	Employees []EmployeeChecklist `json:"employees"`
}

// Engine builds checklists using a validator registry.
type Engine struct {
	registry *validator.Registry
	logger   *slog.Logger
}

// NewEngine creates the aggregation engine.
func NewEngine(registry *validator.Registry, logger *slog.Logger) *Engine {
	return &Engine{registry: registry, logger: logger}
}

// BuildEmployeeChecklist scores one employee. An unregistered country is
// not an error: it yields a zero-field checklist and a warning log.
func (en *Engine) BuildEmployeeChecklist(e models.Employee) EmployeeChecklist {
	country := e.Country()
	if country == "" {
		country = "UNKNOWN"
	}

	v, ok := en.registry.Resolve(country)
	if !ok {
		en.logger.Warn("no validator registered for country", "country", country)
		return en.emptyChecklist(e, country)
	}

	results := v.Validate(e)
	completed := 0
	for _, r := range results {
		if r.Complete {
			completed++
		}
	}
	total := len(results)

	return EmployeeChecklist{
		EmployeeID:      idPtr(e),
		Name:            e.FullName(),
		Country:         country,
		CompletedFields: completed,
		TotalFields:     total,
		CompletionRate:  percentage(completed, total),
		IsComplete:      total > 0 && completed == total,
		Fields:          results,
	}
}

// BuildReport scores a sequence of employees, preserving input order, and
// folds the field counts into a country summary. Empty input yields a
// report with all zero counts.
func (en *Engine) BuildReport(employees []models.Employee) Report {
	checklists := make([]EmployeeChecklist, 0, len(employees))
	totalFields := 0
	completedFields := 0

	for _, e := range employees {
		c := en.BuildEmployeeChecklist(e)
		totalFields += c.TotalFields
		completedFields += c.CompletedFields
		checklists = append(checklists, c)
	}

	return Report{
		Summary: Summary{
			TotalEmployees:    len(employees),
			TotalFields:       totalFields,
			CompletedFields:   completedFields,
			IncompleteFields:  totalFields - completedFields,
			OverallCompletion: percentage(completedFields, totalFields),
		},
		Employees: checklists,
	}
}

// emptyChecklist is the zero-field result for countries without rules.
// is_complete is deliberately false: "no fields checked" must not read as
// "fully complete" on a dashboard.
func (en *Engine) emptyChecklist(e models.Employee, country string) EmployeeChecklist {
	return EmployeeChecklist{
		EmployeeID: idPtr(e),
		Name:       e.FullName(),
		Country:    country,
		Fields:     validator.FieldResults{},
	}
}

// percentage rounds completed/total to two decimals, 0 when total is 0.
func percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}

func idPtr(e models.Employee) *int64 {
	if id, ok := e.ID(); ok {
		return &id
	}
	return nil
}
