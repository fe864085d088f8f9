package memory

import (
	"context"
	"sync"

	"github.com/dcastillo/pageant-scoring/internal/domain/score"
)

type ScoreRepository struct {
	mu   sync.RWMutex
	rows map[string]score.Score
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{rows: make(map[string]score.Score)}
}

func scoreKey(s score.Score) string {
	return s.JudgeID + "|" + s.CategoryID + "|" + s.ContestantID + "|" + s.CriterionID
}

func (r *ScoreRepository) UpsertBatch(_ context.Context, scores []score.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range scores {
		r.rows[scoreKey(s)] = s
	}
	return nil
}

func (r *ScoreRepository) ListByCategory(_ context.Context, categoryID string) ([]score.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []score.Score
	for _, s := range r.rows {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ScoreRepository) ListByJudgeCategoryContestant(_ context.Context, judgeID, categoryID, contestantID string) ([]score.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []score.Score
	for _, s := range r.rows {
		if s.JudgeID == judgeID && s.CategoryID == categoryID && s.ContestantID == contestantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ScoreRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]score.Score)
	return nil
}
