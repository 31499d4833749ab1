package service

import (
	"context"

	"notesapi/internal/auth/model"
	"notesapi/pkg/apperror"
)

type Repository interface {
	Add(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) error
	Delete(ctx context.Context, token string) error
}

type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, username, password string) (string, error)
}

type TokenManager interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	VerifyRefreshToken(raw string) (string, error)
}

type AuthService struct {
	Repo   Repository
	Users  CredentialVerifier
	Tokens TokenManager
}

func NewAuthService(repo Repository, users CredentialVerifier, tokens TokenManager) *AuthService {
	return &AuthService{Repo: repo, Users: users, Tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.TokenPair, error) {
	userID, err := s.Users.VerifyCredential(ctx, username, password)
	if err != nil {
		return nil, err
	}
	access, err := s.Tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Add(ctx, refresh); err != nil {
		return nil, err
	}
	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh issues a new access token for a refresh token that is both
// correctly signed and still stored.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := s.Repo.Verify(ctx, refreshToken); err != nil {
		return "", err
	}
	userID, err := s.Tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperror.Invariant("invalid refresh token")
	}
	return s.Tokens.GenerateAccessToken(userID)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.Repo.Verify(ctx, refreshToken); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, refreshToken)
}
