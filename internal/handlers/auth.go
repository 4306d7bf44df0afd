package handlers

import (
	"context"
	"net/http"

	"github.com/ahsanfayaz52/notesapi/internal/logging"
	"github.com/ahsanfayaz52/notesapi/internal/services"
)

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
}

func RegisterHandler(svc AuthService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.RegisterInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, log, err)
			return
		}

		res, err := svc.Register(r.Context(), in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		log.Info(r.Context(), "user registered", "user_id", res.User.ID)
		writeJSON(w, http.StatusCreated, res)
	}
}

func LoginHandler(svc AuthService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.LoginInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, log, err)
			return
		}

		res, err := svc.Login(r.Context(), in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
