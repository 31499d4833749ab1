package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notesapi/internal/user/model"
	"notesapi/pkg/apperror"
	"notesapi/pkg/logger"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, id, username, passwordHash, fullname string) (string, error) {
	var userID string
	err := r.DB.QueryRowContext(ctx, `INSERT INTO users VALUES($1, $2, $3, $4) RETURNING id`,
		id, username, passwordHash, fullname).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.Invariant("failed to add user")
	}
	// A concurrent registration can pass the availability check first.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return "", apperror.Conflict("username is already taken")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to create user %s: %v", username, err)
		return "", fmt.Errorf("db error: %w", err)
	}
	return userID, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var found string
	err := r.DB.QueryRowContext(ctx, `SELECT username FROM users WHERE username = $1`, username).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to check username %s: %v", username, err)
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	u := &model.User{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, username, fullname FROM users WHERE id = $1`, userID).
		Scan(&u.ID, &u.Username, &u.Fullname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user %s: %v", userID, err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// GetCredential returns the id and password hash stored for username.
func (r *UserRepository) GetCredential(ctx context.Context, username string) (string, string, error) {
	var id, hash string
	err := r.DB.QueryRowContext(ctx, `SELECT id, password FROM users WHERE username = $1`, username).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", apperror.NotFound("user not found")
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get credential for %s: %v", username, err)
		return "", "", fmt.Errorf("db error: %w", err)
	}
	return id, hash, nil
}

func (r *UserRepository) SearchByUsername(ctx context.Context, prefix string) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, username, fullname FROM users WHERE username LIKE $1 ORDER BY username`, prefix+"%")
	if err != nil {
		logger.Sugar.Errorf("Failed to search users by %q: %v", prefix, err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Fullname); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
