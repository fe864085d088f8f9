package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
)

type ActivityRepository struct {
	mu      sync.RWMutex
	entries []activity.Entry
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Append(_ context.Context, entry activity.Entry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return entry.ID, nil
}

func (r *ActivityRepository) ListRecent(_ context.Context, limit int, since *time.Time) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest insertion first, then a stable sort on CreatedAt so a delayed
	// retry append still lands in timestamp order.
	ordered := make([]activity.Entry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		ordered = append(ordered, r.entries[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	var out []activity.Entry
	for _, entry := range ordered {
		if since != nil && !entry.CreatedAt.After(*since) {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *ActivityRepository) DeleteAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.entries)
	r.entries = nil
	return count, nil
}
