package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
	"github.com/dcastillo/pageant-scoring/internal/domain/score"
	lockmock "github.com/dcastillo/pageant-scoring/internal/mocks/domain/lock"
	scoremock "github.com/dcastillo/pageant-scoring/internal/mocks/domain/score"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

func TestScoringService_SubmitCategory_LostLockRaceUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scoreRepo := scoremock.NewRepository(t)
	lockRepo := lockmock.NewRepository(t)

	contestantRepo := &stubContestantRepository{items: []contestant.Contestant{
		{ID: "cont-1", Number: 1, FullName: "Isabella Cruz", Division: contestant.DivisionFemale},
	}}
	judgeRepo := &stubJudgeRepository{items: []judge.Judge{
		{ID: "judge-1", DisplayName: "Maricel Ocampo", Division: contestant.DivisionFemale},
	}}
	categoryRepo := &stubCategoryRepository{items: []category.Category{gownCategory()}}
	activityRepo := &stubActivityRepository{}

	logger := logging.NewNop()
	activitySvc, err := NewActivityService(activityRepo, &stubIDGenerator{}, nil, logger)
	if err != nil {
		t.Fatalf("new activity service: %v", err)
	}
	t.Cleanup(activitySvc.Close)

	service := NewScoringService(scoreRepo, lockRepo, judgeRepo, contestantRepo, categoryRepo, activitySvc, nil, cache.NewStore(time.Minute), logger)

	// No lock at the pre-check, no prior rows, then the conditional insert
	// loses to a concurrent submission. The loser must not write any rows
	// after the winner's lock landed.
	lockRepo.
		On("Exists", mock.Anything, "judge-1", "cat-gown", "cont-1").
		Return(false, nil).
		Once()
	scoreRepo.
		On("ListByJudgeCategoryContestant", mock.Anything, "judge-1", "cat-gown", "cont-1").
		Return(nil, nil).
		Once()
	lockRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(item lock.SubmissionLock) bool {
			return item.JudgeID == "judge-1" && item.CategoryID == "cat-gown" && item.ContestantID == "cont-1"
		})).
		Return(lock.ErrAlreadyLocked).
		Once()

	actor := judgePrincipal(judgeRepo.items[0])
	_, err = service.SubmitCategory(ctx, actor, SubmitCategoryInput{
		CategoryID:   "cat-gown",
		ContestantID: "cont-1",
		Scores: []CriterionScore{
			{CriterionID: "crit-fit", RawValue: 8},
			{CriterionID: "crit-poise", RawValue: 9},
			{CriterionID: "crit-impact", RawValue: 10},
		},
	})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked when losing the lock race, got %v", err)
	}
	scoreRepo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
}

func TestScoringService_SubmitCategory_NoLockLeftAfterFailedWriteUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scoreRepo := scoremock.NewRepository(t)
	lockRepo := lockmock.NewRepository(t)

	contestantRepo := &stubContestantRepository{items: []contestant.Contestant{
		{ID: "cont-1", Number: 1, FullName: "Isabella Cruz", Division: contestant.DivisionFemale},
	}}
	judgeRepo := &stubJudgeRepository{items: []judge.Judge{
		{ID: "judge-1", DisplayName: "Maricel Ocampo", Division: contestant.DivisionFemale},
	}}
	categoryRepo := &stubCategoryRepository{items: []category.Category{gownCategory()}}
	activityRepo := &stubActivityRepository{}

	logger := logging.NewNop()
	activitySvc, err := NewActivityService(activityRepo, &stubIDGenerator{}, nil, logger)
	if err != nil {
		t.Fatalf("new activity service: %v", err)
	}
	t.Cleanup(activitySvc.Close)

	service := NewScoringService(scoreRepo, lockRepo, judgeRepo, contestantRepo, categoryRepo, activitySvc, nil, cache.NewStore(time.Minute), logger)

	// The lock is claimed first, the batch write fails, and the claimed lock
	// must be released so the judge can resubmit.
	lockRepo.
		On("Exists", mock.Anything, "judge-1", "cat-gown", "cont-1").
		Return(false, nil).
		Once()
	scoreRepo.
		On("ListByJudgeCategoryContestant", mock.Anything, "judge-1", "cat-gown", "cont-1").
		Return(nil, nil).
		Once()
	lockRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(item lock.SubmissionLock) bool {
			return item.JudgeID == "judge-1" && item.CategoryID == "cat-gown" && item.ContestantID == "cont-1"
		})).
		Return(nil).
		Once()
	scoreRepo.
		On("UpsertBatch", mock.Anything, mock.MatchedBy(func(rows []score.Score) bool { return len(rows) == 3 })).
		Return(errors.New("connection reset")).
		Once()
	lockRepo.
		On("Delete", mock.Anything, "judge-1", "cat-gown", "cont-1").
		Return(nil).
		Once()

	actor := judgePrincipal(judgeRepo.items[0])
	_, err = service.SubmitCategory(ctx, actor, SubmitCategoryInput{
		CategoryID:   "cat-gown",
		ContestantID: "cont-1",
		Scores: []CriterionScore{
			{CriterionID: "crit-fit", RawValue: 8},
			{CriterionID: "crit-poise", RawValue: 9},
			{CriterionID: "crit-impact", RawValue: 10},
		},
	})
	if err == nil {
		t.Fatalf("expected error from failed batch write")
	}
}
