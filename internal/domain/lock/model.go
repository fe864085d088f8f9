package lock

import "time"

// SubmissionLock freezes one judge's scores for one category+contestant pair.
// Its presence is the single source of truth for "already submitted". Only the
// submitting judge creates a lock (via the score write path) and only an admin
// removes it.
type SubmissionLock struct {
	JudgeID      string
	CategoryID   string
	ContestantID string
	CreatedBy    string
	CreatedAt    time.Time
}
