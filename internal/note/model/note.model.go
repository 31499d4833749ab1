package model

import "time"

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Owner     string    `json:"owner"`
	Username  string    `json:"username,omitempty"` // owner's username, set by single-note reads only
}

// NoteRequest is the payload for both creating and editing a note.
type NoteRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body" validate:"required"`
	Tags  []string `json:"tags" validate:"required"`
}

type CreateNoteResponse struct {
	NoteID string `json:"noteId"`
}
