package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/auth"
	"github.com/ahsanfayaz52/notesapi/internal/models"
)

func TestRegister_Success(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Register(context.Background(), RegisterInput{
		Username: "  ana ",
		Email:    " Ana@X.com ",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ana", res.User.Username)
	assert.Equal(t, "ana@x.com", res.User.Email)

	userID, err := f.tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	stored, err := f.store.GetUserByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestRegister_DuplicateEmailAnyCase(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@x.com")

	_, err := f.auth.Register(context.Background(), RegisterInput{
		Username: "other",
		Email:    "ANA@x.COM",
		Password: "pw",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ConflictError))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"missing username", RegisterInput{Email: "a@x.com", Password: "p"}, "Please provide all fields"},
		{"blank username", RegisterInput{Username: "   ", Email: "a@x.com", Password: "p"}, "Please provide all fields"},
		{"missing email", RegisterInput{Username: "a", Password: "p"}, "Please provide all fields"},
		{"missing password", RegisterInput{Username: "a", Email: "a@x.com"}, "Please provide all fields"},
		{"bad email", RegisterInput{Username: "a", Email: "not-an-email", Password: "p"}, "Invalid email address"},
		{"password too long", RegisterInput{Username: "a", Email: "a@x.com", Password: strings.Repeat("p", 80)}, "Password is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(context.Background(), tt.in)
			require.Error(t, err)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.ValidationError, appErr.Type)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	_, reg := f.register(t, "ana", "Ana@x.com")

	res, err := f.auth.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User, res.User)

	userID, err := f.tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@x.com")

	_, wrongPassword := f.auth.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "nope"})
	_, unknownUser := f.auth.Login(context.Background(), LoginInput{Email: "ghost@x.com", Password: "secret1"})

	for _, err := range []error{wrongPassword, unknownUser} {
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.InvalidCredentialsError, appErr.Type)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), LoginInput{Email: "ana@x.com"})
	assert.True(t, apperror.Is(err, apperror.ValidationError))

	_, err = f.auth.Login(context.Background(), LoginInput{Email: "ana", Password: "p"})
	assert.True(t, apperror.Is(err, apperror.ValidationError))
}

type failingStore struct {
	UserStore
	err error
}

func (s failingStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, s.err
}

func TestLogin_StoreFailureIsInternal(t *testing.T) {
	svc := NewAuthService(failingStore{err: errors.New("db down")}, auth.NewJWTService("k"), auth.NewPasswordHasher(4))

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "p"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.InternalError))
}
