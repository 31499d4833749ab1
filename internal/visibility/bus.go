// Package visibility carries the "notes visible to user X changed" signal from
// every mutating operation to the subscribers that keep derived state fresh.
package visibility

import (
	"context"
	"sync"
)

type Listener func(ctx context.Context, userID string)

// Notifier is the publishing side used by the note and collaboration services.
type Notifier interface {
	Changed(ctx context.Context, userID string)
}

// Bus dispatches synchronously, in subscription order, so every listener has
// run by the time Changed returns.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

func (b *Bus) Changed(ctx context.Context, userID string) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, userID)
	}
}
