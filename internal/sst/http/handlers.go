package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// decodeBody parses a JSON request body into v. Returns false after writing
// the error response.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		sstsdk.ErrInvalidJSONBody.WriteError(w)
		return false
	}
	return true
}

// writeDomainError maps the shared service and store failure modes onto API
// errors. Handlers with endpoint-specific failures switch on those first.
func writeDomainError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		sstsdk.NewValidationError("one or more fields are missing or invalid").WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		sstsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, store.ErrAlreadyExists):
		sstsdk.ErrConflict.WriteError(w)
	default:
		log.Error("request failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
	}
}
