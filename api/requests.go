package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/errs"
)

const maxJSONBody = 1 << 20

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// urlID parses a uuid path parameter
func urlID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(param, "not a uuid")
	}
	return id, nil
}

type confirmation struct {
	title   string
	message string
}

var (
	confirmDeleteCategory = confirmation{"Delete Category?", "Are you sure you want to delete this category? This cannot be undone."}
	confirmDeleteProject  = confirmation{"Delete Project?", "Are you sure you want to delete this project? This cannot be undone."}
	confirmDeleteVideo    = confirmation{"Delete Video?", "Are you sure you want to delete this video? This cannot be undone."}
)

// confirmed reports whether a destructive request was explicitly confirmed
// with ?confirm=true. Otherwise it returns the prompt to show.
func confirmed(r *http.Request, c confirmation) error {
	if strings.EqualFold(r.URL.Query().Get("confirm"), "true") {
		return nil
	}
	return errs.NewConfirmationRequiredError(c.title, c.message)
}

// wantsHTML reports whether the caller is a browser navigating rather than
// an API client
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
