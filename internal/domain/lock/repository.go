package lock

import (
	"context"
	"errors"
)

// ErrAlreadyLocked is returned by Create when a lock already exists for the
// composite key. ErrNotFound is returned by Delete when no lock exists.
var (
	ErrAlreadyLocked = errors.New("submission lock already exists")
	ErrNotFound      = errors.New("submission lock not found")
)

type Repository interface {
	Exists(ctx context.Context, judgeID, categoryID, contestantID string) (bool, error)
	// Create is an atomic conditional insert on the composite key. Two
	// concurrent calls for the same key must yield exactly one success; the
	// loser observes ErrAlreadyLocked.
	Create(ctx context.Context, item SubmissionLock) error
	Delete(ctx context.Context, judgeID, categoryID, contestantID string) error
	ListByJudge(ctx context.Context, judgeID string) ([]SubmissionLock, error)
	DeleteAll(ctx context.Context) error
}
