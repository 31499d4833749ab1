package service

import (
	"context"

	"notesapi/internal/visibility"
	"notesapi/pkg/apperror"
	"notesapi/pkg/idgen"
)

type Repository interface {
	Insert(ctx context.Context, id, noteID, userID string) (string, error)
	Delete(ctx context.Context, noteID, userID string) error
	Exists(ctx context.Context, noteID, userID string) (bool, error)
}

type CollaborationService struct {
	Repo     Repository
	Notifier visibility.Notifier
}

func NewCollaborationService(repo Repository, notifier visibility.Notifier) *CollaborationService {
	return &CollaborationService{Repo: repo, Notifier: notifier}
}

// Grant does not reject a pair that is already granted.
func (s *CollaborationService) Grant(ctx context.Context, noteID, userID string) (string, error) {
	id, err := s.Repo.Insert(ctx, idgen.New("collab"), noteID, userID)
	if err != nil {
		return "", err
	}
	s.Notifier.Changed(ctx, userID)
	return id, nil
}

func (s *CollaborationService) Revoke(ctx context.Context, noteID, userID string) error {
	if err := s.Repo.Delete(ctx, noteID, userID); err != nil {
		return err
	}
	s.Notifier.Changed(ctx, userID)
	return nil
}

// VerifyCollaborator fails with an invariant error when no grant matches.
func (s *CollaborationService) VerifyCollaborator(ctx context.Context, noteID, userID string) error {
	ok, err := s.Repo.Exists(ctx, noteID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Invariant("collaboration could not be verified")
	}
	return nil
}
