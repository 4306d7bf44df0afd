package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ahsanfayaz52/notesapi/internal/logging"
	"github.com/ahsanfayaz52/notesapi/internal/models"
	"github.com/ahsanfayaz52/notesapi/internal/services"
)

type NoteService interface {
	Create(ctx context.Context, in services.NoteInput) (*models.Note, error)
	List(ctx context.Context) ([]models.Note, error)
	Search(ctx context.Context, term string) ([]models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Update(ctx context.Context, id string, in services.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

type messageResponse struct {
	Msg string `json:"msg"`
}

func CreateNoteHandler(svc NoteService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.NoteInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, log, err)
			return
		}

		note, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	}
}

// ListNotesHandler also accepts ?q= as an alternative to /notes/search/{q}.
func ListNotesHandler(svc NoteService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			notes []models.Note
			err   error
		)
		if q := r.URL.Query().Get("q"); q != "" {
			notes, err = svc.Search(r.Context(), q)
		} else {
			notes, err = svc.List(r.Context())
		}
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, notes)
	}
}

func SearchNotesHandler(svc NoteService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := svc.Search(r.Context(), mux.Vars(r)["q"])
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, notes)
	}
}

func GetNoteHandler(svc NoteService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		note, err := svc.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

func UpdateNoteHandler(svc NoteService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.NoteInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, log, err)
			return
		}

		note, err := svc.Update(r.Context(), mux.Vars(r)["id"], in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

func DeleteNoteHandler(svc NoteService, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Msg: "Note deleted"})
	}
}
