package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
)

type JudgeRepository struct {
	mu    sync.RWMutex
	items map[string]judge.Judge
}

func NewJudgeRepository(judges []judge.Judge) *JudgeRepository {
	items := make(map[string]judge.Judge, len(judges))
	for _, j := range judges {
		items[j.ID] = j
	}
	return &JudgeRepository{items: items}
}

func (r *JudgeRepository) ListByDivision(_ context.Context, division contestant.Division) ([]judge.Judge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []judge.Judge
	for _, j := range r.items {
		if j.Division == division {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r *JudgeRepository) GetByID(_ context.Context, judgeID string) (judge.Judge, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.items[judgeID]
	if !ok {
		return judge.Judge{}, false, nil
	}
	return j, true, nil
}

func (r *JudgeRepository) Create(_ context.Context, item judge.Judge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *JudgeRepository) CountByDivision(_ context.Context, division contestant.Division) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, j := range r.items {
		if j.Division == division {
			count++
		}
	}
	return count, nil
}

func (r *JudgeRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]judge.Judge)
	return nil
}
