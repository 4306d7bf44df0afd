package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/auth"
)

func TestProfile_Get(t *testing.T) {
	f := newFixture(t)
	ctx, reg := f.register(t, "ana", "ana@x.com")

	user, err := f.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.User, user)

	_, err = f.profiles.Get(auth.WithUserID(context.Background(), "deleted-user"))
	assert.True(t, apperror.Is(err, apperror.NotFoundError))

	_, err = f.profiles.Get(context.Background())
	assert.True(t, apperror.Is(err, apperror.UnauthenticatedError))
}

func TestProfile_Update(t *testing.T) {
	f := newFixture(t)
	ctx, reg := f.register(t, "ana", "ana@x.com")

	user, err := f.profiles.Update(ctx, ProfileInput{Username: " Ana B ", Email: "ANA.B@x.com"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)
	assert.Equal(t, "Ana B", user.Username)
	assert.Equal(t, "ana.b@x.com", user.Email)

	_, err = f.auth.Login(context.Background(), LoginInput{Email: "ana.b@x.com", Password: "secret1"})
	assert.NoError(t, err, "login works with the new email")
}

func TestProfile_UpdateValidation(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.register(t, "ana", "ana@x.com")

	_, err := f.profiles.Update(ctx, ProfileInput{Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ValidationError))
	assert.Equal(t, "Please provide username & email", apperror.FromError(err).Message)

	_, err = f.profiles.Update(ctx, ProfileInput{Username: "a", Email: "nope"})
	assert.True(t, apperror.Is(err, apperror.ValidationError))
}

func TestProfile_UpdateEmailTakenByAnotherUser(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@x.com")
	bobCtx, _ := f.register(t, "bob", "bob@x.com")

	_, err := f.profiles.Update(bobCtx, ProfileInput{Username: "bob", Email: "Ana@x.com"})
	assert.True(t, apperror.Is(err, apperror.ConflictError))
}
