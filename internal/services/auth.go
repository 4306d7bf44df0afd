package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/db"
	"github.com/ahsanfayaz52/notesapi/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id, username, email string) (*models.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by both Register and Login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type AuthService struct {
	clock
	users  UserStore
	tokens TokenIssuer
	hasher PasswordHasher
}

func NewAuthService(users UserStore, tokens TokenIssuer, hasher PasswordHasher, opts ...Option) *AuthService {
	return &AuthService{
		clock:  newClock(opts),
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates an account for a new email address and signs the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in, "Please provide all fields"); err != nil {
		return nil, err
	}

	_, err := s.users.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperror.NewConflictError("User already exists", nil)
	case !errors.Is(err, db.ErrNotFound):
		return nil, apperror.NewInternalError("look up user", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.NewValidationError("Password is too long", err)
		}
		return nil, apperror.NewInternalError("hash password", err)
	}

	user, err := s.users.CreateUser(ctx, &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.timestamp(),
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("User already exists", err)
		}
		return nil, apperror.NewInternalError("create user", err)
	}

	return s.issue(user)
}

// Login reports the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in, "Please provide all fields"); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperror.NewInvalidCredentialsError(nil)
		}
		return nil, apperror.NewInternalError("look up user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		return nil, apperror.NewInvalidCredentialsError(nil)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("generate token", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
