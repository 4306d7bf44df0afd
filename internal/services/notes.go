package services

import (
	"context"
	"errors"
	"time"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/db"
	"github.com/ahsanfayaz52/notesapi/internal/models"
)

type NoteStore interface {
	CreateNote(ctx context.Context, note *models.Note) (*models.Note, error)
	ListNotes(ctx context.Context, ownerID, search string) ([]models.Note, error)
	GetNote(ctx context.Context, id, ownerID string) (*models.Note, error)
	UpdateNote(ctx context.Context, id, ownerID, title, content string, updatedAt time.Time) (*models.Note, error)
	DeleteNote(ctx context.Context, id, ownerID string) error
}

// NoteInput is the body of create and update requests. Any owner field a
// client sends is not part of it and is dropped during decoding.
type NoteInput struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,max=1000"`
}

const noteRequiredMsg = "Please provide title and content"

type NoteService struct {
	clock
	notes NoteStore
}

func NewNoteService(notes NoteStore, opts ...Option) *NoteService {
	return &NoteService{
		clock: newClock(opts),
		notes: notes,
	}
}

func (s *NoteService) Create(ctx context.Context, in NoteInput) (*models.Note, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in, noteRequiredMsg); err != nil {
		return nil, err
	}

	now := s.timestamp()
	note, err := s.notes.CreateNote(ctx, &models.Note{
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, apperror.NewInternalError("create note", err)
	}
	return note, nil
}

// List returns the caller's notes, newest first.
func (s *NoteService) List(ctx context.Context) ([]models.Note, error) {
	return s.Search(ctx, "")
}

// Search returns the caller's notes whose title or content contains term,
// ignoring case, newest first. An empty term matches every note.
func (s *NoteService) Search(ctx context.Context, term string) ([]models.Note, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.notes.ListNotes(ctx, userID, term)
	if err != nil {
		return nil, apperror.NewInternalError("list notes", err)
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	note, err := s.notes.GetNote(ctx, id, userID)
	if err != nil {
		return nil, noteStoreError("get note", err)
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, id string, in NoteInput) (*models.Note, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in, noteRequiredMsg); err != nil {
		return nil, err
	}
	note, err := s.notes.UpdateNote(ctx, id, userID, in.Title, in.Content, s.timestamp())
	if err != nil {
		return nil, noteStoreError("update note", err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	if err := s.notes.DeleteNote(ctx, id, userID); err != nil {
		return noteStoreError("delete note", err)
	}
	return nil
}

// noteStoreError reports a note that is missing or owned by someone else as
// the same NotFound.
func noteStoreError(op string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return apperror.NewNotFoundError("Note not found", err)
	}
	return apperror.NewInternalError(op, err)
}
