package cache

import (
	"context"

	"notesapi/pkg/logger"
)

// Invalidator drops a user's cached listing whenever their visible notes change.
type Invalidator struct {
	cache Cache
}

func NewInvalidator(c Cache) *Invalidator {
	return &Invalidator{cache: c}
}

// VisibilityChanged matches visibility.Listener. The delete ignores
// cancellation of ctx.
func (i *Invalidator) VisibilityChanged(ctx context.Context, userID string) {
	if err := i.cache.Delete(context.WithoutCancel(ctx), NotesKey(userID)); err != nil {
		logger.Sugar.Warnf("Failed to invalidate notes cache for user %s: %v", userID, err)
	}
}
