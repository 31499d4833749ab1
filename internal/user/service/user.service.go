package service

import (
	"context"
	"errors"

	"notesapi/internal/user/model"
	"notesapi/pkg/apperror"
	"notesapi/pkg/idgen"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type Repository interface {
	Create(ctx context.Context, id, username, passwordHash, fullname string) (string, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetCredential(ctx context.Context, username string) (string, string, error)
	SearchByUsername(ctx context.Context, prefix string) ([]model.User, error)
}

type UserService struct {
	Repo Repository
}

func NewUserService(repo Repository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) Register(ctx context.Context, username, password, fullname string) (string, error) {
	if err := s.VerifyUsernameAvailable(ctx, username); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return s.Repo.Create(ctx, idgen.New("user"), username, string(hash), fullname)
}

func (s *UserService) VerifyUsernameAvailable(ctx context.Context, username string) error {
	taken, err := s.Repo.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("username is already taken")
	}
	return nil
}

func (s *UserService) Lookup(ctx context.Context, userID string) (*model.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

func (s *UserService) Search(ctx context.Context, prefix string) ([]model.User, error) {
	return s.Repo.SearchByUsername(ctx, prefix)
}

// VerifyCredential returns the user id when password matches the stored hash.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) VerifyCredential(ctx context.Context, username, password string) (string, error) {
	id, hash, err := s.Repo.GetCredential(ctx, username)
	if errors.Is(err, apperror.ErrNotFound) {
		return "", apperror.Unauthorized("invalid username or password")
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", apperror.Unauthorized("invalid username or password")
	}
	return id, nil
}
