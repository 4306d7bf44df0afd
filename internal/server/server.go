// Package server wires the stores, services and handlers into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/ahsanfayaz52/notesapi/internal/auth"
	"github.com/ahsanfayaz52/notesapi/internal/config"
	"github.com/ahsanfayaz52/notesapi/internal/db"
	"github.com/ahsanfayaz52/notesapi/internal/handlers"
	"github.com/ahsanfayaz52/notesapi/internal/logging"
	"github.com/ahsanfayaz52/notesapi/internal/middleware"
	"github.com/ahsanfayaz52/notesapi/internal/services"
)

type Server struct {
	cfg     *config.Config
	log     logging.Logger
	handler http.Handler
}

// New builds the router. opts are passed to the note and auth services.
func New(cfg *config.Config, store db.Store, log logging.Logger, opts ...services.Option) *Server {
	jwtService := auth.NewJWTService(cfg.JWTSecret, auth.WithTTL(cfg.TokenTTL))
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	authService := services.NewAuthService(store, jwtService, hasher, opts...)
	noteService := services.NewNoteService(store, opts...)
	profileService := services.NewProfileService(store)

	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API is running."))
	}).Methods(http.MethodGet)

	api := r
	if prefix := strings.TrimSuffix(cfg.APIPrefix, "/"); prefix != "" {
		api = r.PathPrefix(prefix).Subrouter()
	}

	api.HandleFunc("/auth/register", handlers.RegisterHandler(authService, log)).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handlers.LoginHandler(authService, log)).Methods(http.MethodPost)

	requireAuth := auth.JWTMiddleware(jwtService, log)

	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(requireAuth)
	profile.HandleFunc("", handlers.GetProfileHandler(profileService, log)).Methods(http.MethodGet)
	profile.HandleFunc("", handlers.UpdateProfileHandler(profileService, log)).Methods(http.MethodPut)

	notes := api.PathPrefix("/notes").Subrouter()
	notes.Use(requireAuth)
	notes.HandleFunc("", handlers.CreateNoteHandler(noteService, log)).Methods(http.MethodPost)
	notes.HandleFunc("", handlers.ListNotesHandler(noteService, log)).Methods(http.MethodGet)
	notes.HandleFunc("/search/{q}", handlers.SearchNotesHandler(noteService, log)).Methods(http.MethodGet)
	notes.HandleFunc("/{id}", handlers.GetNoteHandler(noteService, log)).Methods(http.MethodGet)
	notes.HandleFunc("/{id}", handlers.UpdateNoteHandler(noteService, log)).Methods(http.MethodPut)
	notes.HandleFunc("/{id}", handlers.DeleteNoteHandler(noteService, log)).Methods(http.MethodDelete)

	var h http.Handler = r
	h = middleware.Recoverer(log)(h)
	h = cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})(h)
	h = middleware.RequestLogger(log)(h)

	return &Server{cfg: cfg, log: log, handler: h}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info(context.Background(), "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
