package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
	"github.com/dcastillo/pageant-scoring/internal/domain/score"
	"github.com/dcastillo/pageant-scoring/internal/domain/user"
	"github.com/dcastillo/pageant-scoring/internal/events"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

const summaryCachePrefix = "summary:"

// CriterionScore is one raw value keyed by criterion, as submitted by the
// judge's score sheet.
type CriterionScore struct {
	CriterionID string  `json:"criterionId" validate:"required"`
	RawValue    float64 `json:"rawValue"`
}

// SubmitCategoryInput is a judge's complete score sheet for one contestant in
// one category. Partial sheets are rejected.
type SubmitCategoryInput struct {
	JudgeID      string           `json:"judgeId" validate:"required"`
	CategoryID   string           `json:"categoryId" validate:"required"`
	ContestantID string           `json:"contestantId" validate:"required"`
	Scores       []CriterionScore `json:"scores" validate:"required,min=1,dive"`
}

// SubmitResult reports what a submission did: Action distinguishes a first
// write from a post-unlock correction, Total is the weighted category total.
type SubmitResult struct {
	Action activity.Action
	Total  float64
}

// ScoringService owns the judge score write path. A successful submission is
// the only thing that creates a submission lock, so the write and the lock
// transition live in one place.
type ScoringService struct {
	scoreRepo      score.Repository
	lockRepo       lock.Repository
	judgeRepo      judge.Repository
	contestantRepo contestant.Repository
	categoryRepo   category.Repository
	activitySvc    *ActivityService
	broker         *events.Broker
	summaryCache   *cache.Store
	logger         *logging.Logger
	now            func() time.Time
}

func NewScoringService(
	scoreRepo score.Repository,
	lockRepo lock.Repository,
	judgeRepo judge.Repository,
	contestantRepo contestant.Repository,
	categoryRepo category.Repository,
	activitySvc *ActivityService,
	broker *events.Broker,
	summaryCache *cache.Store,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		scoreRepo:      scoreRepo,
		lockRepo:       lockRepo,
		judgeRepo:      judgeRepo,
		contestantRepo: contestantRepo,
		categoryRepo:   categoryRepo,
		activitySvc:    activitySvc,
		broker:         broker,
		summaryCache:   summaryCache,
		logger:         logger,
		now:            time.Now,
	}
}

// ListSubmitted returns the scores a judge has already locked in for one
// contestant+category, so a judge screen can render its read-only state.
func (s *ScoringService) ListSubmitted(ctx context.Context, actor user.Principal, categoryID, contestantID string) ([]score.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListSubmitted")
	defer span.End()

	judgeID := actor.UserID
	scores, err := s.scoreRepo.ListByJudgeCategoryContestant(ctx, judgeID, categoryID, contestantID)
	if err != nil {
		return nil, fmt.Errorf("list submitted scores: %w", err)
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].CriterionID < scores[j].CriterionID })
	return scores, nil
}

// SubmitCategory validates a judge's full score sheet, claims the
// (judge, category, contestant) lock, then persists the rows. The lock insert
// is the atomic arbiter when two submissions race, and taking it before the
// write keeps a losing duplicate from landing rows after the winner locked.
// A failed row write releases the claimed lock.
func (s *ScoringService) SubmitCategory(ctx context.Context, actor user.Principal, input SubmitCategoryInput) (SubmitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SubmitCategory")
	defer span.End()

	if !actor.IsJudge() {
		return SubmitResult{}, fmt.Errorf("%w: submitting scores requires the judge role", ErrUnauthorized)
	}
	if input.JudgeID == "" {
		input.JudgeID = actor.UserID
	}
	if input.JudgeID != actor.UserID {
		return SubmitResult{}, fmt.Errorf("%w: a judge may only submit their own scores", ErrUnauthorized)
	}

	j, cont, cat, err := s.resolveSubmission(ctx, actor, input)
	if err != nil {
		return SubmitResult{}, err
	}

	locked, err := s.lockRepo.Exists(ctx, input.JudgeID, input.CategoryID, input.ContestantID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("check submission lock: %w", err)
	}
	if locked {
		return SubmitResult{}, fmt.Errorf("%w: scores for %s in %s are locked", ErrLocked, cont.FullName, cat.Label)
	}

	rows, total, err := s.buildScoreRows(cat, input)
	if err != nil {
		return SubmitResult{}, err
	}

	// A prior row for this key means this write is a post-unlock correction.
	prior, err := s.scoreRepo.ListByJudgeCategoryContestant(ctx, input.JudgeID, input.CategoryID, input.ContestantID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("check prior scores: %w", err)
	}
	action := activity.ActionScoreSubmitted
	if len(prior) > 0 {
		action = activity.ActionScoreUpdated
	}

	now := s.now().UTC()
	err = s.lockRepo.Create(ctx, lock.SubmissionLock{
		JudgeID:      input.JudgeID,
		CategoryID:   input.CategoryID,
		ContestantID: input.ContestantID,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, lock.ErrAlreadyLocked) {
			// Lost a race with a concurrent submission for the same key.
			return SubmitResult{}, fmt.Errorf("%w: scores for %s in %s are locked", ErrLocked, cont.FullName, cat.Label)
		}
		return SubmitResult{}, fmt.Errorf("create submission lock: %w", err)
	}

	if err := s.scoreRepo.UpsertBatch(ctx, rows); err != nil {
		if delErr := s.lockRepo.Delete(ctx, input.JudgeID, input.CategoryID, input.ContestantID); delErr != nil {
			s.logger.ErrorContext(ctx, "release lock after failed score write",
				"error", delErr,
				"judge_id", input.JudgeID,
				"category_id", input.CategoryID,
				"contestant_id", input.ContestantID,
			)
		}
		return SubmitResult{}, fmt.Errorf("persist score batch: %w", err)
	}

	s.activitySvc.Record(ctx, activity.Entry{
		ActorID:     actor.UserID,
		ActorType:   activity.ActorJudge,
		ActorName:   j.DisplayName,
		Action:      action,
		EntityRef:   input.ContestantID,
		Description: fmt.Sprintf("%s scored %s in %s", j.DisplayName, cont.FullName, cat.Label),
		Metadata: map[string]string{
			"judge_id":      input.JudgeID,
			"category_id":   input.CategoryID,
			"contestant_id": input.ContestantID,
			"total":         fmt.Sprintf("%.2f", total),
		},
		CreatedAt: now,
	})

	if s.broker != nil {
		s.broker.Publish(events.Event{
			Type:         events.TypeScore,
			Action:       string(action),
			JudgeID:      input.JudgeID,
			CategoryID:   input.CategoryID,
			ContestantID: input.ContestantID,
			At:           now,
		})
		s.broker.Publish(events.Event{
			Type:         events.TypeLock,
			Action:       string(activity.ActionLockCreated),
			JudgeID:      input.JudgeID,
			CategoryID:   input.CategoryID,
			ContestantID: input.ContestantID,
			At:           now,
		})
	}
	if s.summaryCache != nil {
		s.summaryCache.DeletePrefix(ctx, summaryCachePrefix)
	}

	s.logger.InfoContext(ctx, "score sheet submitted",
		"judge_id", input.JudgeID,
		"category_id", input.CategoryID,
		"contestant_id", input.ContestantID,
		"action", string(action),
	)
	return SubmitResult{Action: action, Total: total}, nil
}

// resolveSubmission loads and cross-checks the three entities a submission
// references. Judges may only score contestants in their own division.
func (s *ScoringService) resolveSubmission(ctx context.Context, actor user.Principal, input SubmitCategoryInput) (judge.Judge, contestant.Contestant, category.Category, error) {
	j, ok, err := s.judgeRepo.GetByID(ctx, input.JudgeID)
	if err != nil {
		return judge.Judge{}, contestant.Contestant{}, category.Category{}, fmt.Errorf("load judge: %w", err)
	}
	if !ok {
		return judge.Judge{}, contestant.Contestant{}, category.Category{}, fmt.Errorf("%w: judge %s", ErrNotFound, input.JudgeID)
	}

	cont, ok, err := s.contestantRepo.GetByID(ctx, input.ContestantID)
	if err != nil {
		return judge.Judge{}, contestant.Contestant{}, category.Category{}, fmt.Errorf("load contestant: %w", err)
	}
	if !ok {
		return judge.Judge{}, contestant.Contestant{}, category.Category{}, fmt.Errorf("%w: contestant %s", ErrNotFound, input.ContestantID)
	}
	if cont.Division != j.Division {
		return judge.Judge{}, contestant.Contestant{}, category.Category{}, fmt.Errorf("%w: contestant %s is outside judge %s's division", ErrUnauthorized, cont.FullName, j.DisplayName)
	}

	cat, ok, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return judge.Judge{}, contestant.Contestant{}, category.Category{}, fmt.Errorf("load category: %w", err)
	}
	if !ok {
		return judge.Judge{}, contestant.Contestant{}, category.Category{}, fmt.Errorf("%w: category %s", ErrNotFound, input.CategoryID)
	}
	return j, cont, cat, nil
}

// buildScoreRows checks the sheet covers every criterion of the category
// exactly once with in-range values, and computes the weighted rows. No row is
// written unless all pass.
func (s *ScoringService) buildScoreRows(cat category.Category, input SubmitCategoryInput) ([]score.Score, float64, error) {
	seen := make(map[string]struct{}, len(input.Scores))
	rows := make([]score.Score, 0, len(input.Scores))
	total := 0.0
	now := s.now().UTC()

	for _, cs := range input.Scores {
		criterion, ok := cat.CriterionByID(cs.CriterionID)
		if !ok {
			return nil, 0, fmt.Errorf("%w: criterion %s does not belong to category %s", ErrInvalidInput, cs.CriterionID, cat.Label)
		}
		if _, dup := seen[cs.CriterionID]; dup {
			return nil, 0, fmt.Errorf("%w: criterion %s appears more than once", ErrInvalidInput, criterion.Label)
		}
		seen[cs.CriterionID] = struct{}{}

		if cs.RawValue < 0 || cs.RawValue > criterion.MaxScore {
			return nil, 0, fmt.Errorf("%w: score %.2f for %s is outside 0..%.0f", ErrInvalidInput, cs.RawValue, criterion.Label, criterion.MaxScore)
		}

		weighted := cs.RawValue * criterion.Weight
		total += weighted
		rows = append(rows, score.Score{
			JudgeID:      input.JudgeID,
			ContestantID: input.ContestantID,
			CategoryID:   input.CategoryID,
			CriterionID:  cs.CriterionID,
			RawValue:     cs.RawValue,
			Weighted:     weighted,
			UpdatedAt:    now,
		})
	}

	if len(seen) != len(cat.Criteria) {
		for _, criterion := range cat.Criteria {
			if _, ok := seen[criterion.ID]; !ok {
				return nil, 0, fmt.Errorf("%w: missing score for %s", ErrInvalidInput, criterion.Label)
			}
		}
	}
	return rows, total, nil
}
