package ports

import (
	"context"
	"io"
)

// BinaryStore is a filesystem-like surface rooted at one configured
// directory. Callers pass bare filenames; path construction and traversal
// protection are the implementation's concern.
type BinaryStore interface {
	// Save streams content to the named file and returns its size in bytes.
	Save(ctx context.Context, filename string, content io.Reader) (int64, error)
	// Exists reports whether the named file is present.
	Exists(ctx context.Context, filename string) (bool, error)
	// Delete removes the named file. A missing file surfaces as
	// domain.ErrFileNotFound.
	Delete(ctx context.Context, filename string) error
}

// ViewTracker deduplicates view counting: a given viewer address counts at
// most one view per resource within the tracker's TTL window.
type ViewTracker interface {
	// FirstView reports whether this is the first sighting of the
	// (kind, slug, viewerAddr) triple within the window, marking it as seen.
	FirstView(ctx context.Context, kind, slug, viewerAddr string) (bool, error)
}
