package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahsanfayaz52/notesapi/internal/models"
)

// dialect captures what differs between the SQL backends. Queries use "?"
// placeholders, which both MySQL and SQLite accept.
type dialect struct {
	name   string
	schema []string

	// fold is the SQL function that lowercases a column for search. It must
	// agree with strings.ToLower, which is applied to the search term.
	fold              string
	isUniqueViolation func(error) bool
}

// SQLStore is the database/sql backend shared by MySQL and SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

func newSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d}
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s schema: %w", s.dialect.name, err)
		}
	}
	return nil
}

func (s *SQLStore) Close(context.Context) error {
	return s.db.Close()
}

func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	created.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password, created_at) VALUES (?, ?, ?, ?, ?)`,
		created.ID, created.Username, created.Email, created.PasswordHash, toMillis(created.CreatedAt))
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (s *SQLStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *SQLStore) UpdateUser(ctx context.Context, id, username, email string) (*models.User, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ? WHERE id = ?`, username, email, id)
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		createdAt int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}

func (s *SQLStore) CreateNote(ctx context.Context, note *models.Note) (*models.Note, error) {
	created := *note
	created.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.UserID, created.Title, created.Content,
		toMillis(created.CreatedAt), toMillis(created.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return &created, nil
}

const noteColumns = `id, user_id, title, content, created_at, updated_at`

// ListNotes returns the owner's notes newest first. A non-empty search keeps
// only notes whose title or content contains it, ignoring case.
func (s *SQLStore) ListNotes(ctx context.Context, ownerID, search string) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = ?`
	args := []any{ownerID}

	if search != "" {
		pattern := likePattern(search)
		fold := s.dialect.fold
		query += ` AND (` + fold + `(title) LIKE ? ESCAPE '!' OR ` + fold + `(content) LIKE ? ESCAPE '!')`
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// likePattern turns a literal search term into a LIKE pattern matched with
// ESCAPE '!'.
func likePattern(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func (s *SQLStore) GetNote(ctx context.Context, id, ownerID string) (*models.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND user_id = ?`, id, ownerID)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return n, err
}

func (s *SQLStore) UpdateNote(ctx context.Context, id, ownerID, title, content string, updatedAt time.Time) (*models.Note, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		title, content, toMillis(updatedAt), id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetNote(ctx, id, ownerID)
}

func (s *SQLStore) DeleteNote(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(sc scanner) (*models.Note, error) {
	var (
		n                    models.Note
		createdAt, updatedAt int64
	)
	if err := sc.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	n.CreatedAt = fromMillis(createdAt)
	n.UpdatedAt = fromMillis(updatedAt)
	return &n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
