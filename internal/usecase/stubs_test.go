package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
	"github.com/dcastillo/pageant-scoring/internal/domain/score"
)

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

type stubContestantRepository struct {
	mu    sync.Mutex
	items []contestant.Contestant
}

func (r *stubContestantRepository) ListByDivision(_ context.Context, division contestant.Division) ([]contestant.Contestant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []contestant.Contestant
	for _, item := range r.items {
		if item.Division == division {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubContestantRepository) GetByID(_ context.Context, id string) (contestant.Contestant, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return contestant.Contestant{}, false, nil
}

func (r *stubContestantRepository) Create(_ context.Context, item contestant.Contestant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return nil
}

func (r *stubContestantRepository) CountByDivision(_ context.Context, division contestant.Division) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.Division == division {
			count++
		}
	}
	return count, nil
}

func (r *stubContestantRepository) NumberExists(_ context.Context, division contestant.Division, number int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Division == division && item.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubContestantRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	return nil
}

type stubJudgeRepository struct {
	mu    sync.Mutex
	items []judge.Judge
}

func (r *stubJudgeRepository) ListByDivision(_ context.Context, division contestant.Division) ([]judge.Judge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []judge.Judge
	for _, item := range r.items {
		if item.Division == division {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubJudgeRepository) GetByID(_ context.Context, id string) (judge.Judge, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return judge.Judge{}, false, nil
}

func (r *stubJudgeRepository) Create(_ context.Context, item judge.Judge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return nil
}

func (r *stubJudgeRepository) CountByDivision(_ context.Context, division contestant.Division) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.Division == division {
			count++
		}
	}
	return count, nil
}

func (r *stubJudgeRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	return nil
}

type stubCategoryRepository struct {
	items []category.Category
}

func (r *stubCategoryRepository) List(_ context.Context) ([]category.Category, error) {
	return r.items, nil
}

func (r *stubCategoryRepository) GetByID(_ context.Context, id string) (category.Category, bool, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return category.Category{}, false, nil
}

type stubScoreRepository struct {
	mu        sync.Mutex
	rows      map[string]score.Score
	upsertErr error
}

func scoreKey(s score.Score) string {
	return s.JudgeID + "|" + s.CategoryID + "|" + s.ContestantID + "|" + s.CriterionID
}

func (r *stubScoreRepository) UpsertBatch(_ context.Context, scores []score.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if r.rows == nil {
		r.rows = make(map[string]score.Score)
	}
	for _, s := range scores {
		r.rows[scoreKey(s)] = s
	}
	return nil
}

func (r *stubScoreRepository) ListByCategory(_ context.Context, categoryID string) ([]score.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []score.Score
	for _, s := range r.rows {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubScoreRepository) ListByJudgeCategoryContestant(_ context.Context, judgeID, categoryID, contestantID string) ([]score.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []score.Score
	for _, s := range r.rows {
		if s.JudgeID == judgeID && s.CategoryID == categoryID && s.ContestantID == contestantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubScoreRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = nil
	return nil
}

type stubLockRepository struct {
	mu    sync.Mutex
	locks map[string]lock.SubmissionLock
}

func lockKey(judgeID, categoryID, contestantID string) string {
	return judgeID + "|" + categoryID + "|" + contestantID
}

func (r *stubLockRepository) Exists(_ context.Context, judgeID, categoryID, contestantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.locks[lockKey(judgeID, categoryID, contestantID)]
	return ok, nil
}

func (r *stubLockRepository) Create(_ context.Context, item lock.SubmissionLock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := lockKey(item.JudgeID, item.CategoryID, item.ContestantID)
	if _, ok := r.locks[key]; ok {
		return lock.ErrAlreadyLocked
	}
	if r.locks == nil {
		r.locks = make(map[string]lock.SubmissionLock)
	}
	r.locks[key] = item
	return nil
}

func (r *stubLockRepository) Delete(_ context.Context, judgeID, categoryID, contestantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := lockKey(judgeID, categoryID, contestantID)
	if _, ok := r.locks[key]; !ok {
		return lock.ErrNotFound
	}
	delete(r.locks, key)
	return nil
}

func (r *stubLockRepository) ListByJudge(_ context.Context, judgeID string) ([]lock.SubmissionLock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []lock.SubmissionLock
	for _, item := range r.locks {
		if item.JudgeID == judgeID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubLockRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = nil
	return nil
}

type stubActivityRepository struct {
	mu        sync.Mutex
	entries   []activity.Entry
	failNext  int
	appendErr error
}

func (r *stubActivityRepository) Append(_ context.Context, entry activity.Entry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext > 0 {
		r.failNext--
		return "", r.appendErr
	}
	r.entries = append(r.entries, entry)
	return entry.ID, nil
}

func (r *stubActivityRepository) ListRecent(_ context.Context, limit int, since *time.Time) ([]activity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []activity.Entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if since != nil && !r.entries[i].CreatedAt.After(*since) {
			continue
		}
		out = append(out, r.entries[i])
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubActivityRepository) DeleteAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.entries)
	r.entries = nil
	return count, nil
}

func (r *stubActivityRepository) actions() []activity.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]activity.Action, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.Action)
	}
	return out
}
