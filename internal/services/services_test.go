package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahsanfayaz52/notesapi/internal/auth"
	"github.com/ahsanfayaz52/notesapi/internal/db"
)

// stepClock advances by one second on every call so that creation order is
// reflected in timestamps.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	store    db.Store
	tokens   *auth.JWTService
	auth     *AuthService
	notes    *NoteService
	profiles *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := db.InitSQLite(context.Background(), filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	clk := newStepClock()
	tokens := auth.NewJWTService("test-secret")
	return &fixture{
		store:    store,
		tokens:   tokens,
		auth:     NewAuthService(store, tokens, auth.NewPasswordHasher(bcrypt.MinCost), WithClock(clk.Now)),
		notes:    NewNoteService(store, WithClock(clk.Now)),
		profiles: NewProfileService(store),
	}
}

// register creates a user and returns a context authenticated as them.
func (f *fixture) register(t *testing.T, username, email string) (context.Context, *AuthResult) {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return auth.WithUserID(context.Background(), res.User.ID), res
}
