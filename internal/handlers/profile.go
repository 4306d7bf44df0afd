package handlers

import (
	"context"
	"net/http"

	"github.com/ahsanfayaz52/notesapi/internal/logging"
	"github.com/ahsanfayaz52/notesapi/internal/models"
	"github.com/ahsanfayaz52/notesapi/internal/services"
)

type ProfileService interface {
	Get(ctx context.Context) (models.PublicUser, error)
	Update(ctx context.Context, in services.ProfileInput) (models.PublicUser, error)
}

func GetProfileHandler(svc ProfileService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.Get(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func UpdateProfileHandler(svc ProfileService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ProfileInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, log, err)
			return
		}

		user, err := svc.Update(r.Context(), in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
