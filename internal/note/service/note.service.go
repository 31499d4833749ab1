package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"notesapi/internal/cache"
	"notesapi/internal/note/model"
	"notesapi/internal/visibility"
	"notesapi/pkg/apperror"
	"notesapi/pkg/idgen"
	"notesapi/pkg/logger"
)

const defaultTitle = "untitled"

type Repository interface {
	Insert(ctx context.Context, n *model.Note) (string, error)
	ListVisible(ctx context.Context, userID string) ([]model.Note, error)
	GetByID(ctx context.Context, noteID string) (*model.Note, error)
	Update(ctx context.Context, noteID, title, body string, tags []string, updatedAt time.Time) (string, error)
	Delete(ctx context.Context, noteID string) (string, error)
	GetOwner(ctx context.Context, noteID string) (string, error)
}

// CollaboratorVerifier fails when userID holds no grant on noteID.
type CollaboratorVerifier interface {
	VerifyCollaborator(ctx context.Context, noteID, userID string) error
}

type NoteService struct {
	Repo          Repository
	Collaborators CollaboratorVerifier
	Cache         cache.Cache
	Notifier      visibility.Notifier
	CacheTTL      time.Duration
	Now           func() time.Time
}

func NewNoteService(repo Repository, collaborators CollaboratorVerifier, c cache.Cache, notifier visibility.Notifier, cacheTTL time.Duration) *NoteService {
	return &NoteService{
		Repo:          repo,
		Collaborators: collaborators,
		Cache:         c,
		Notifier:      notifier,
		CacheTTL:      cacheTTL,
		Now:           time.Now,
	}
}

// now is truncated to what timestamptz stores so cached and fresh reads agree.
func (s *NoteService) now() time.Time {
	return s.Now().UTC().Truncate(time.Microsecond)
}

func (s *NoteService) Create(ctx context.Context, ownerID string, req model.NoteRequest) (string, error) {
	title, tags := normalize(req)
	now := s.now()
	note := &model.Note{
		ID:        idgen.New("note"),
		Title:     title,
		Body:      req.Body,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
		Owner:     ownerID,
	}

	id, err := s.Repo.Insert(ctx, note)
	if err != nil {
		return "", err
	}
	s.Notifier.Changed(ctx, ownerID)
	return id, nil
}

// ListVisible reads through the per-user listing cache. The bool reports
// whether the result was served from cache.
func (s *NoteService) ListVisible(ctx context.Context, userID string) ([]model.Note, bool, error) {
	key := cache.NotesKey(userID)

	raw, err := s.Cache.Get(ctx, key)
	switch {
	case err == nil:
		var notes []model.Note
		uerr := json.Unmarshal([]byte(raw), &notes)
		if uerr == nil {
			return notes, true, nil
		}
		logger.Sugar.Warnf("Discarding unreadable cached listing for user %s: %v", userID, uerr)
	case !errors.Is(err, cache.ErrCacheMiss):
		logger.Sugar.Warnf("Notes cache read failed for user %s, falling back to database: %v", userID, err)
	}

	notes, err := s.Repo.ListVisible(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	payload, err := json.Marshal(notes)
	if err != nil {
		logger.Sugar.Warnf("Failed to encode listing for user %s: %v", userID, err)
		return notes, false, nil
	}
	if err := s.Cache.Set(ctx, key, string(payload), s.CacheTTL); err != nil {
		logger.Sugar.Warnf("Failed to cache listing for user %s: %v", userID, err)
	}
	return notes, false, nil
}

// GetByID does not authorize; callers run VerifyAccess first.
func (s *NoteService) GetByID(ctx context.Context, noteID string) (*model.Note, error) {
	return s.Repo.GetByID(ctx, noteID)
}

// Edit invalidates the owner's listing only. Collaborators keep their cached
// listing until it expires.
func (s *NoteService) Edit(ctx context.Context, noteID string, req model.NoteRequest) error {
	title, tags := normalize(req)
	owner, err := s.Repo.Update(ctx, noteID, title, req.Body, tags, s.now())
	if err != nil {
		return err
	}
	s.Notifier.Changed(ctx, owner)
	return nil
}

func (s *NoteService) Delete(ctx context.Context, noteID string) error {
	owner, err := s.Repo.Delete(ctx, noteID)
	if err != nil {
		return err
	}
	s.Notifier.Changed(ctx, owner)
	return nil
}

// VerifyOwner succeeds only for the note's owner.
func (s *NoteService) VerifyOwner(ctx context.Context, noteID, userID string) error {
	access, err := s.ownership(ctx, noteID, userID)
	if err != nil {
		return err
	}
	return access.Err()
}

// VerifyAccess succeeds for the owner and for collaborators.
func (s *NoteService) VerifyAccess(ctx context.Context, noteID, userID string) error {
	access, err := s.Authorize(ctx, noteID, userID)
	if err != nil {
		return err
	}
	return access.Err()
}

// Authorize runs the two-step pipeline: ownership first, then the collaboration
// grant, which is consulted only when the note exists and userID is not its owner.
// The error is reserved for storage failures during the ownership lookup.
func (s *NoteService) Authorize(ctx context.Context, noteID, userID string) (Access, error) {
	access, err := s.ownership(ctx, noteID, userID)
	if err != nil || access != AccessForbidden {
		return access, err
	}

	if err := s.Collaborators.VerifyCollaborator(ctx, noteID, userID); err != nil {
		if !errors.Is(err, apperror.ErrInvariant) {
			logger.Sugar.Warnf("Collaboration check for note %s user %s failed: %v", noteID, userID, err)
		}
		return AccessForbidden, nil
	}
	return AccessCollaborator, nil
}

func (s *NoteService) ownership(ctx context.Context, noteID, userID string) (Access, error) {
	owner, err := s.Repo.GetOwner(ctx, noteID)
	if errors.Is(err, apperror.ErrNotFound) {
		return AccessNotFound, nil
	}
	if err != nil {
		return AccessNotFound, err
	}
	if owner != userID {
		return AccessForbidden, nil
	}
	return AccessOwner, nil
}

func normalize(req model.NoteRequest) (string, []string) {
	title := req.Title
	if title == "" {
		title = defaultTitle
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return title, tags
}
