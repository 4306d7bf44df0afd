package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/logging"
)

// Recoverer turns a panic in a handler into a 500 JSON response.
func Recoverer(log logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					log.Error(r.Context(), "panic", "method", r.Method, "path", r.URL.Path, "panic", rvr)

					appErr := apperror.NewInternalError("panic", nil)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(appErr.StatusCode())
					_ = json.NewEncoder(w).Encode(appErr.ToResponse())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
