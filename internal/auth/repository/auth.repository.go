package repository

import (
	"context"
	"database/sql"
	"fmt"

	"notesapi/pkg/apperror"
	"notesapi/pkg/logger"
)

// AuthRepository stores the refresh tokens that are currently valid.
type AuthRepository struct {
	DB *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

func (r *AuthRepository) Add(ctx context.Context, token string) error {
	if _, err := r.DB.ExecContext(ctx, `INSERT INTO authentications VALUES($1)`, token); err != nil {
		logger.Sugar.Errorf("Failed to store refresh token: %v", err)
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *AuthRepository) Verify(ctx context.Context, token string) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM authentications WHERE token = $1)`, token,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !exists {
		return apperror.Invariant("invalid refresh token")
	}
	return nil
}

func (r *AuthRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM authentications WHERE token = $1`, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
