// Package services implements registration, login and the resource services
// for notes and profiles. Resource services take the caller's identity only
// from the request context set by the auth middleware.
package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ahsanfayaz52/notesapi/internal/apperror"
	"github.com/ahsanfayaz52/notesapi/internal/auth"
)

type Option func(*clock)

// WithClock sets the time source used for createdAt and updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(c *clock) { c.now = now }
}

type clock struct {
	now func() time.Time
}

func newClock(opts []Option) clock {
	c := clock{now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// timestamp is truncated to milliseconds, the precision every store keeps.
func (c clock) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Millisecond)
}

func requireUserID(ctx context.Context) (string, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return "", apperror.NewUnauthenticatedError("No token, authorization denied", nil)
	}
	return userID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateInput runs the struct's validate tags. A missing field yields
// requiredMsg; other failures get a message naming the field.
func validateInput(in any, requiredMsg string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidationError(requiredMsg, err)
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperror.NewValidationError(requiredMsg, err)
		}
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "email":
		return apperror.NewValidationError("Invalid email address", err)
	case "max":
		return apperror.NewValidationError(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()), err)
	default:
		return apperror.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()), err)
	}
}
