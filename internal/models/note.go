package models

import "time"

const (
	MaxNoteTitleLength   = 100
	MaxNoteContentLength = 1000
)

// Note is a text note owned by exactly one user. UserID never changes after
// creation.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
