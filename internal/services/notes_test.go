package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/models"
)

func TestNotes_CreateAndGetRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx, reg := f.register(t, "ana", "ana@x.com")

	created, err := f.notes.Create(ctx, NoteInput{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := f.notes.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "milk, eggs", got.Content)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestNotes_Validation(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.register(t, "ana", "ana@x.com")

	tests := []struct {
		name string
		in   NoteInput
		msg  string
	}{
		{"missing title", NoteInput{Content: "c"}, "Please provide title and content"},
		{"missing content", NoteInput{Title: "t"}, "Please provide title and content"},
		{"title too long", NoteInput{Title: strings.Repeat("t", 101), Content: "c"}, "title must be at most 100 characters"},
		{"content too long", NoteInput{Title: "t", Content: strings.Repeat("c", 1001)}, "content must be at most 1000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.notes.Create(ctx, tt.in)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.ValidationError, appErr.Type)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}

	// Limits are in characters, not bytes.
	_, err := f.notes.Create(ctx, NoteInput{Title: strings.Repeat("é", 100), Content: strings.Repeat("ü", 1000)})
	assert.NoError(t, err)
}

func TestNotes_OtherUsersNotesAreInvisible(t *testing.T) {
	f := newFixture(t)
	aliceCtx, _ := f.register(t, "alice", "alice@x.com")
	bobCtx, _ := f.register(t, "bob", "bob@x.com")

	note, err := f.notes.Create(aliceCtx, NoteInput{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)

	_, err = f.notes.Get(bobCtx, note.ID)
	assert.True(t, apperror.Is(err, apperror.NotFoundError))

	_, err = f.notes.Update(bobCtx, note.ID, NoteInput{Title: "hacked", Content: "hacked"})
	assert.True(t, apperror.Is(err, apperror.NotFoundError))

	err = f.notes.Delete(bobCtx, note.ID)
	assert.True(t, apperror.Is(err, apperror.NotFoundError))

	list, err := f.notes.List(bobCtx)
	require.NoError(t, err)
	assert.Empty(t, list)

	found, err := f.notes.Search(bobCtx, "milk")
	require.NoError(t, err)
	assert.Empty(t, found)

	// Missing and foreign notes are reported identically.
	_, missingErr := f.notes.Get(bobCtx, "does-not-exist")
	_, foreignErr := f.notes.Get(bobCtx, note.ID)
	assert.Equal(t, missingErr.Error(), foreignErr.Error())

	got, err := f.notes.Get(aliceCtx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
}

func TestNotes_ListNewestFirstAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.register(t, "ana", "ana@x.com")

	first, err := f.notes.Create(ctx, NoteInput{Title: "Shopping", Content: "buy bread"})
	require.NoError(t, err)
	second, err := f.notes.Create(ctx, NoteInput{Title: "Work", Content: "call Bob about the BREAD order"})
	require.NoError(t, err)
	third, err := f.notes.Create(ctx, NoteInput{Title: "Gym", Content: "legs"})
	require.NoError(t, err)

	all, err := f.notes.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, ids(all))

	found, err := f.notes.Search(ctx, "bread")
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, ids(found))

	found, err = f.notes.Search(ctx, "gym")
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID}, ids(found))
}

func TestNotes_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.register(t, "ana", "ana@x.com")

	note, err := f.notes.Create(ctx, NoteInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	updated, err := f.notes.Update(ctx, note.ID, NoteInput{Title: "t2", Content: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, note.UserID, updated.UserID)
	assert.True(t, updated.UpdatedAt.After(note.UpdatedAt))

	_, err = f.notes.Update(ctx, note.ID, NoteInput{Title: "", Content: "c"})
	assert.True(t, apperror.Is(err, apperror.ValidationError))

	require.NoError(t, f.notes.Delete(ctx, note.ID))
	_, err = f.notes.Get(ctx, note.ID)
	assert.True(t, apperror.Is(err, apperror.NotFoundError))
}

func TestNotes_RequireIdentity(t *testing.T) {
	f := newFixture(t)
	anon := context.Background()

	_, err := f.notes.Create(anon, NoteInput{Title: "t", Content: "c"})
	assert.True(t, apperror.Is(err, apperror.UnauthenticatedError))

	_, err = f.notes.List(anon)
	assert.True(t, apperror.Is(err, apperror.UnauthenticatedError))

	err = f.notes.Delete(anon, "x")
	assert.True(t, apperror.Is(err, apperror.UnauthenticatedError))
}

func ids(notes []models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}
