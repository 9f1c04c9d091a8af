// Package handler exposes the hub's read-only HTTP API.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrhub/internal/hub/service"
	"hrhub/pkg/platform/httputil"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Handler serves checklist and employee read queries.
type Handler struct {
	service *service.Service
}

// New creates the read-path handler.
func New(s *service.Service) *Handler {
	return &Handler{service: s}
}

// Register mounts the read routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/checklists/{country}", h.checklist)
	r.Get("/employees", h.employees)
	r.Get("/employees/{id}", h.employee)
}

func (h *Handler) checklist(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	if country == "" {
		httputil.WriteValidationError(w, map[string]string{"country": "country is required"})
		return
	}

	report := h.service.ChecklistReport(r.Context(), country)
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) employees(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		httputil.WriteValidationError(w, map[string]string{"country": "country is required"})
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", defaultPerPage)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	result := h.service.EmployeePage(r.Context(), country, page, perPage)
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) employee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httputil.WriteValidationError(w, map[string]string{"id": "id must be a positive integer"})
		return
	}

	e, err := h.service.Employee(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": e})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
