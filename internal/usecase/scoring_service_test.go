package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
)

func gownSheet(judgeID, contestantID string, fit, poise, impact float64) SubmitCategoryInput {
	return SubmitCategoryInput{
		JudgeID:      judgeID,
		CategoryID:   "cat-gown",
		ContestantID: contestantID,
		Scores: []CriterionScore{
			{CriterionID: "crit-fit", RawValue: fit},
			{CriterionID: "crit-poise", RawValue: poise},
			{CriterionID: "crit-impact", RawValue: impact},
		},
	}
}

func TestScoringService_SubmitCategory_WeightedTotalAndLock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionFemale)
	c := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionFemale)

	got, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), gownSheet(j.ID, c.ID, 8, 9, 10))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Action != activity.ActionScoreSubmitted {
		t.Fatalf("unexpected action: got=%s want=%s", got.Action, activity.ActionScoreSubmitted)
	}
	if !almostEqual(got.Total, 8.7) {
		t.Fatalf("unexpected weighted total: got=%f want=8.7", got.Total)
	}

	locked, err := env.lockSvc.IsLocked(context.Background(), j.ID, "cat-gown", c.ID)
	if err != nil {
		t.Fatalf("is locked: %v", err)
	}
	if !locked {
		t.Fatalf("expected the submission to be locked")
	}

	if _, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), gownSheet(j.ID, c.ID, 9, 9, 9)); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked on resubmission, got %v", err)
	}

	rows, err := env.scoring.ListSubmitted(context.Background(), judgePrincipal(j), "cat-gown", c.ID)
	if err != nil {
		t.Fatalf("list submitted: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.RawValue == 9 && row.CriterionID == "crit-fit" {
			t.Fatalf("rejected resubmission must not overwrite rows")
		}
	}
}

func TestScoringService_SubmitCategory_RejectsPartialAndOutOfRange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionMale)
	c := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionMale)

	partial := gownSheet(j.ID, c.ID, 8, 9, 10)
	partial.Scores = partial.Scores[:2]
	if _, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), partial); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a partial sheet, got %v", err)
	}

	if _, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), gownSheet(j.ID, c.ID, 8, 11, 10)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an out-of-range value, got %v", err)
	}
	if _, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), gownSheet(j.ID, c.ID, -1, 9, 10)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a negative value, got %v", err)
	}

	unknown := gownSheet(j.ID, c.ID, 8, 9, 10)
	unknown.Scores[2].CriterionID = "crit-bogus"
	if _, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), unknown); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an unknown criterion, got %v", err)
	}

	duplicate := gownSheet(j.ID, c.ID, 8, 9, 10)
	duplicate.Scores[2].CriterionID = "crit-fit"
	if _, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), duplicate); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a duplicated criterion, got %v", err)
	}

	// No rejected sheet may leave rows or a lock behind.
	rows, err := env.scoring.ListSubmitted(context.Background(), judgePrincipal(j), "cat-gown", c.ID)
	if err != nil {
		t.Fatalf("list submitted: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no stored rows after rejected sheets, got %d", len(rows))
	}
	locked, err := env.lockSvc.IsLocked(context.Background(), j.ID, "cat-gown", c.ID)
	if err != nil {
		t.Fatalf("is locked: %v", err)
	}
	if locked {
		t.Fatalf("rejected sheets must not create a lock")
	}
}

func TestScoringService_SubmitCategory_DivisionAndRoleChecks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionMale)
	other := env.seedContestant("c9", 9, "Wrong Division", contestant.DivisionFemale)

	if _, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), gownSheet(j.ID, other.ID, 8, 9, 10)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized across divisions, got %v", err)
	}

	if _, err := env.scoring.SubmitCategory(context.Background(), adminPrincipal(), gownSheet(j.ID, other.ID, 8, 9, 10)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-judge actor, got %v", err)
	}

	impostor := judgePrincipal(j)
	impostor.UserID = "j2"
	if _, err := env.scoring.SubmitCategory(context.Background(), impostor, gownSheet(j.ID, other.ID, 8, 9, 10)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized when submitting another judge's sheet, got %v", err)
	}
}

func TestScoringService_SubmitCategory_ConcurrentSubmitsOneWinner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionFemale)
	c := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionFemale)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, err := env.scoring.SubmitCategory(context.Background(), judgePrincipal(j), gownSheet(j.ID, c.ID, 8, 9, 10))
			results[slot] = err
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrLocked):
		default:
			t.Fatalf("unexpected submit error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning submission, got %d", wins)
	}
}

func TestScoringService_SubmitCategory_UnlockThenResubmitIsUpdate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionFemale)
	c := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionFemale)
	ctx := context.Background()

	if _, err := env.scoring.SubmitCategory(ctx, judgePrincipal(j), gownSheet(j.ID, c.ID, 8, 9, 10)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := env.lockSvc.RemoveLock(ctx, adminPrincipal(), j.ID, "cat-gown", c.ID); err != nil {
		t.Fatalf("remove lock: %v", err)
	}

	got, err := env.scoring.SubmitCategory(ctx, judgePrincipal(j), gownSheet(j.ID, c.ID, 9, 9, 10))
	if err != nil {
		t.Fatalf("resubmit after unlock: %v", err)
	}
	if got.Action != activity.ActionScoreUpdated {
		t.Fatalf("expected score_updated after unlock, got %s", got.Action)
	}
	if !almostEqual(got.Total, 9.2) {
		t.Fatalf("unexpected corrected total: got=%f want=9.2", got.Total)
	}

	actions := env.activities.actions()
	want := []activity.Action{activity.ActionScoreSubmitted, activity.ActionLockRemoved, activity.ActionScoreUpdated}
	if len(actions) != len(want) {
		t.Fatalf("unexpected activity trail: got=%v want=%v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("unexpected activity trail: got=%v want=%v", actions, want)
		}
	}
}
