package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/logging"
)

type key int

const userIDKey key = 0

// TokenValidator is satisfied by *JWTService.
type TokenValidator interface {
	ValidateToken(tokenStr string) (string, error)
}

// JWTMiddleware rejects requests without a valid bearer token and stores the
// verified user id in the request context. Why a token failed is logged but
// never returned to the caller.
func JWTMiddleware(validator TokenValidator, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthorized(w, "No token, authorization denied")
				return
			}

			userID, err := validator.ValidateToken(tokenStr)
			if err != nil {
				log.Info(r.Context(), "token rejected", "path", r.URL.Path, "reason", err.Error())
				writeUnauthorized(w, "Token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	appErr := apperror.NewUnauthenticatedError(msg, nil)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_ = json.NewEncoder(w).Encode(appErr.ToResponse())
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the user id stored by JWTMiddleware.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
