package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
)

type ContestantRepository struct {
	mu    sync.RWMutex
	items map[string]contestant.Contestant
}

func NewContestantRepository(contestants []contestant.Contestant) *ContestantRepository {
	items := make(map[string]contestant.Contestant, len(contestants))
	for _, c := range contestants {
		items[c.ID] = c
	}
	return &ContestantRepository{items: items}
}

func (r *ContestantRepository) ListByDivision(_ context.Context, division contestant.Division) ([]contestant.Contestant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []contestant.Contestant
	for _, c := range r.items {
		if c.Division == division {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *ContestantRepository) GetByID(_ context.Context, contestantID string) (contestant.Contestant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[contestantID]
	if !ok {
		return contestant.Contestant{}, false, nil
	}
	return c, true, nil
}

func (r *ContestantRepository) Create(_ context.Context, item contestant.Contestant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *ContestantRepository) CountByDivision(_ context.Context, division contestant.Division) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, c := range r.items {
		if c.Division == division {
			count++
		}
	}
	return count, nil
}

func (r *ContestantRepository) NumberExists(_ context.Context, division contestant.Division, number int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Division == division && c.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *ContestantRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]contestant.Contestant)
	return nil
}
