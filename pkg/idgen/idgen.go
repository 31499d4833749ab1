package idgen

import (
	"strings"

	"github.com/google/uuid"
)

const idLength = 16

// New returns "<prefix>-<16 hex chars>", or just the hex part for an empty prefix.
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
	if prefix == "" {
		return raw
	}
	return prefix + "-" + raw
}
