// Package db holds the persistence backends for users and notes. Every note
// query takes the owner id and conjoins it with the note id, so a note owned
// by someone else behaves exactly like a missing one.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahsanfayaz52/notesapi/internal/config"
	"github.com/ahsanfayaz52/notesapi/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is implemented by every backend.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id, username, email string) (*models.User, error)

	CreateNote(ctx context.Context, note *models.Note) (*models.Note, error)
	ListNotes(ctx context.Context, ownerID, search string) ([]models.Note, error)
	GetNote(ctx context.Context, id, ownerID string) (*models.Note, error)
	UpdateNote(ctx context.Context, id, ownerID, title, content string, updatedAt time.Time) (*models.Note, error)
	DeleteNote(ctx context.Context, id, ownerID string) error

	Close(ctx context.Context) error
}

// Open connects to the backend selected by cfg.StorageDriver and makes sure
// its schema exists.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		return InitMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverMySQL:
		return InitMySQL(ctx, cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName)
	case config.DriverSQLite:
		return InitSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
