package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrhub/internal/hr/models"
	"hrhub/internal/hr/rules"
	"hrhub/pkg/platform/httputil"
)

const defaultPerPage = 15

var taxIDPattern = regexp.MustCompile(`^DE\d{9}$`)

// Service defines the employee operations the HTTP layer needs.
type Service interface {
	Paginate(ctx context.Context, country string, page, perPage int) ([]models.Employee, int, error)
	Get(ctx context.Context, id int64) (models.Employee, error)
	Create(ctx context.Context, e models.Employee) (models.Employee, error)
	Update(ctx context.Context, id int64, u models.Update) (models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// Handler exposes the employee CRUD API consumed by the hub and by admin
// tooling.
type Handler struct {
	service Service
	rules   rules.Provider
	logger  *slog.Logger
}

// New creates the employee handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		rules:   rules.NewProvider(),
		logger:  logger,
	}
}

// Register mounts the employee routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

// listMeta matches the pagination envelope the hub's source client parses.
type listMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", defaultPerPage)

	employees, total, err := h.service.Paginate(r.Context(), country, page, perPage)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list employees",
			"country", country, "error", err)
		httputil.WriteError(w, err)
		return
	}

	lastPage := 1
	if total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"data": employees,
		"meta": listMeta{
			CurrentPage: page,
			LastPage:    lastPage,
			PerPage:     perPage,
			Total:       total,
		},
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": e})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var e models.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	e.ID = 0

	if fields := h.validateCreate(e); len(fields) > 0 {
		httputil.WriteValidationError(w, fields)
		return
	}

	created, err := h.service.Create(r.Context(), e)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create employee", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"data": created})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var u models.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if fields := h.validateUpdate(u); len(fields) > 0 {
		httputil.WriteValidationError(w, fields)
		return
	}

	updated, err := h.service.Update(r.Context(), id, u)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": updated})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateCreate enforces the base rules plus format checks on the
// country-specific fields. Country fields are optional at write time;
// completeness is the hub's concern, format is ours.
func (h *Handler) validateCreate(e models.Employee) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(e.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(e.LastName) == "" {
		fields["last_name"] = "last_name is required"
	}
	if !h.rules.Supported(e.Country) {
		fields["country"] = fmt.Sprintf("country must be one of: %s",
			strings.Join(h.rules.SupportedCountries(), ", "))
	}
	if e.Salary < 0 {
		fields["salary"] = "salary must not be negative"
	}
	if e.Country == "Germany" && e.TaxID != "" && !taxIDPattern.MatchString(e.TaxID) {
		fields["tax_id"] = "tax_id must match DE followed by 9 digits"
	}
	return fields
}

func (h *Handler) validateUpdate(u models.Update) map[string]string {
	fields := map[string]string{}

	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		fields["name"] = "name must not be empty"
	}
	if u.LastName != nil && strings.TrimSpace(*u.LastName) == "" {
		fields["last_name"] = "last_name must not be empty"
	}
	if u.Country != nil && !h.rules.Supported(*u.Country) {
		fields["country"] = fmt.Sprintf("country must be one of: %s",
			strings.Join(h.rules.SupportedCountries(), ", "))
	}
	if u.Salary != nil && *u.Salary < 0 {
		fields["salary"] = "salary must not be negative"
	}
	if u.TaxID != nil && *u.TaxID != "" && !taxIDPattern.MatchString(*u.TaxID) {
		fields["tax_id"] = "tax_id must match DE followed by 9 digits"
	}
	return fields
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid employee id"})
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
