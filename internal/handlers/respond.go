package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/logging"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports err to the client. Internal errors are logged with
// their cause and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	appErr := apperror.FromError(err)
	if appErr.Type == apperror.InternalError {
		log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}

// decodeJSON reads a JSON body into v. Unknown fields are ignored, so
// identity fields supplied by a client never reach the services.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.NewValidationError("Request body is required", err)
		}
		return apperror.NewValidationError("Invalid request body", err)
	}
	return nil
}
