package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
)

type LockRepository struct {
	mu    sync.Mutex
	locks map[string]lock.SubmissionLock
}

func NewLockRepository() *LockRepository {
	return &LockRepository{locks: make(map[string]lock.SubmissionLock)}
}

func lockKey(judgeID, categoryID, contestantID string) string {
	return judgeID + "|" + categoryID + "|" + contestantID
}

func (r *LockRepository) Exists(_ context.Context, judgeID, categoryID, contestantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.locks[lockKey(judgeID, categoryID, contestantID)]
	return ok, nil
}

// Create checks presence and inserts under one mutex hold, which makes it the
// atomic arbiter between two racing submissions.
func (r *LockRepository) Create(_ context.Context, item lock.SubmissionLock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lockKey(item.JudgeID, item.CategoryID, item.ContestantID)
	if _, ok := r.locks[key]; ok {
		return lock.ErrAlreadyLocked
	}
	r.locks[key] = item
	return nil
}

func (r *LockRepository) Delete(_ context.Context, judgeID, categoryID, contestantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lockKey(judgeID, categoryID, contestantID)
	if _, ok := r.locks[key]; !ok {
		return lock.ErrNotFound
	}
	delete(r.locks, key)
	return nil
}

func (r *LockRepository) ListByJudge(_ context.Context, judgeID string) ([]lock.SubmissionLock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []lock.SubmissionLock
	for _, item := range r.locks {
		if item.JudgeID == judgeID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		return out[i].ContestantID < out[j].ContestantID
	})
	return out, nil
}

func (r *LockRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = make(map[string]lock.SubmissionLock)
	return nil
}
