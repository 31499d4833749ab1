// Package storage persists uploaded attachments and reports where they can be fetched.
package storage

import (
	"context"
	"io"
)

type Storage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
