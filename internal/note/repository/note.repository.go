package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notesapi/internal/note/model"
	"notesapi/pkg/apperror"
	"notesapi/pkg/logger"

	"github.com/lib/pq"
)

type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) Insert(ctx context.Context, n *model.Note) (string, error) {
	var id string
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO notes (id, title, body, tags, created_at, updated_at, owner) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		n.ID, n.Title, n.Body, pq.Array(n.Tags), n.CreatedAt, n.UpdatedAt, n.Owner,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && id == "") {
		return "", apperror.Invariant("failed to add note")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to create note for owner %s: %v", n.Owner, err)
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// ListVisible returns notes owned by userID together with notes shared with them.
func (r *NoteRepository) ListVisible(ctx context.Context, userID string) ([]model.Note, error) {
	query := `
		SELECT notes.id, notes.title, notes.body, notes.tags, notes.created_at, notes.updated_at, notes.owner
		FROM notes
		LEFT JOIN collaborations ON collaborations.note_id = notes.id
		WHERE notes.owner = $1 OR collaborations.user_id = $1
		GROUP BY notes.id
		ORDER BY notes.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to get notes for user %s: %v", userID, err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, pq.Array(&n.Tags), &n.CreatedAt, &n.UpdatedAt, &n.Owner); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*model.Note, error) {
	query := `
		SELECT notes.id, notes.title, notes.body, notes.tags, notes.created_at, notes.updated_at, notes.owner, users.username
		FROM notes
		LEFT JOIN users ON users.id = notes.owner
		WHERE notes.id = $1`
	var n model.Note
	var username sql.NullString
	err := r.DB.QueryRowContext(ctx, query, noteID).
		Scan(&n.ID, &n.Title, &n.Body, pq.Array(&n.Tags), &n.CreatedAt, &n.UpdatedAt, &n.Owner, &username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("note not found")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get note %s: %v", noteID, err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	n.Username = username.String
	return &n, nil
}

// Update rewrites the mutable fields and returns the note's owner.
func (r *NoteRepository) Update(ctx context.Context, noteID, title, body string, tags []string, updatedAt time.Time) (string, error) {
	var owner string
	err := r.DB.QueryRowContext(ctx,
		`UPDATE notes SET title = $1, body = $2, tags = $3, updated_at = $4 WHERE id = $5 RETURNING owner`,
		title, body, pq.Array(tags), updatedAt, noteID,
	).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.NotFound("failed to update note, id not found")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %s: %v", noteID, err)
		return "", fmt.Errorf("db error: %w", err)
	}
	return owner, nil
}

// Delete removes the note and returns the owner it belonged to.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) (string, error) {
	var owner string
	err := r.DB.QueryRowContext(ctx, `DELETE FROM notes WHERE id = $1 RETURNING owner`, noteID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.NotFound("failed to delete note, id not found")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %s: %v", noteID, err)
		return "", fmt.Errorf("db error: %w", err)
	}
	return owner, nil
}

func (r *NoteRepository) GetOwner(ctx context.Context, noteID string) (string, error) {
	var owner string
	err := r.DB.QueryRowContext(ctx, `SELECT owner FROM notes WHERE id = $1`, noteID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.NotFound("note not found")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get owner for note %s: %v", noteID, err)
		return "", fmt.Errorf("db error: %w", err)
	}
	return owner, nil
}
