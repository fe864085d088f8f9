package activity

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, entry Entry) (string, error)
	// ListRecent returns entries newest-first. A non-nil since narrows the
	// window to entries created strictly after it.
	ListRecent(ctx context.Context, limit int, since *time.Time) ([]Entry, error)
	DeleteAll(ctx context.Context) (int, error)
}
