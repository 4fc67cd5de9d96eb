// Package media stores uploaded binaries and hands back the path persisted
// on the owning document.
package media

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// Store accepts an uploaded binary and returns a retrievable path.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// objectName builds a collision-free stored name, keeping the original
// extension for content-type sniffing by static file servers.
func objectName(filename string) string {
	return uuid.NewString() + filepath.Ext(filename)
}
