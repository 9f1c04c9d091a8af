// Package httputil centralizes JSON response writing so every handler
// returns the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"hrhub/pkg/platform/sentinel"
)

// WriteJSON encodes v with the given status. Encoding errors are ignored:
// the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates an error into the shared JSON error envelope.
// Sentinel errors map to their HTTP statuses; everything else is a 500
// with the detail withheld from the client.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, sentinel.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, sentinel.ErrUnavailable):
		status, code = http.StatusServiceUnavailable, "unavailable"
	}

	WriteJSON(w, status, map[string]string{"error": code})
}

// WriteValidationError returns a 422 with per-field messages, mirroring the
// shape API consumers already parse.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation_failed",
		"fields": fields,
	})
}
