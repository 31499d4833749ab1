package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notesapi/pkg/apperror"
	"notesapi/pkg/logger"
)

type CollaborationRepository struct {
	DB *sql.DB
}

func NewCollaborationRepository(db *sql.DB) *CollaborationRepository {
	return &CollaborationRepository{DB: db}
}

func (r *CollaborationRepository) Insert(ctx context.Context, id, noteID, userID string) (string, error) {
	var returned string
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO collaborations VALUES($1, $2, $3) RETURNING id`, id, noteID, userID,
	).Scan(&returned)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && returned == "") {
		return "", apperror.Invariant("failed to add collaboration")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to add collaborator %s to note %s: %v", userID, noteID, err)
		return "", fmt.Errorf("db error: %w", err)
	}
	return returned, nil
}

// Delete removes every grant matching the pair, duplicates included.
func (r *CollaborationRepository) Delete(ctx context.Context, noteID, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM collaborations WHERE note_id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to remove collaborator %s from note %s: %v", userID, noteID, err)
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		logger.Sugar.Errorf("Failed to count removed grants for note %s user %s: %v", noteID, userID, err)
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("failed to delete collaboration, not found")
	}
	return nil
}

func (r *CollaborationRepository) Exists(ctx context.Context, noteID, userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM collaborations WHERE note_id = $1 AND user_id = $2)`, noteID, userID,
	).Scan(&exists)
	if err != nil {
		logger.Sugar.Errorf("Failed to verify collaborator %s on note %s: %v", userID, noteID, err)
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
