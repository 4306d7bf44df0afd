package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/db"
	"github.com/ahsanfayaz52/notesapi/internal/models"
)

type ProfileInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type ProfileService struct {
	users UserStore
}

func NewProfileService(users UserStore) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context) (models.PublicUser, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.PublicUser{}, apperror.NewNotFoundError("User not found", err)
		}
		return models.PublicUser{}, apperror.NewInternalError("get user", err)
	}
	return user.Public(), nil
}

// Update changes the caller's username and email. The email is only checked
// against other accounts by the store's unique constraint.
func (s *ProfileService) Update(ctx context.Context, in ProfileInput) (models.PublicUser, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in, "Please provide username & email"); err != nil {
		return models.PublicUser{}, err
	}

	user, err := s.users.UpdateUser(ctx, userID, in.Username, in.Email)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return models.PublicUser{}, apperror.NewNotFoundError("User not found", err)
		case errors.Is(err, db.ErrDuplicateEmail):
			return models.PublicUser{}, apperror.NewConflictError("Email already in use", err)
		}
		return models.PublicUser{}, apperror.NewInternalError("update user", err)
	}
	return user.Public(), nil
}
