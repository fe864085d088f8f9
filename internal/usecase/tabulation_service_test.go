package usecase

import (
	"context"
	"testing"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/score"
)

// seedCategoryTotal writes pre-weighted rows so a judge's category total for
// a contestant is exactly the given value.
func seedCategoryTotal(env *testEnv, judgeID, categoryID, contestantID string, total float64) {
	_ = env.scores.UpsertBatch(context.Background(), []score.Score{{
		JudgeID:      judgeID,
		ContestantID: contestantID,
		CategoryID:   categoryID,
		CriterionID:  "crit-fit",
		RawValue:     total,
		Weighted:     total,
	}})
}

func TestTabulationService_Summarize_CompetitionRanking(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionFemale)
	totals := []float64{90, 90, 85, 80}
	for i, total := range totals {
		c := env.seedContestant(
			[]string{"c1", "c2", "c3", "c4"}[i],
			i+1,
			[]string{"Alpha", "Bravo", "Charlie", "Delta"}[i],
			contestant.DivisionFemale,
		)
		seedCategoryTotal(env, j.ID, "cat-gown", c.ID, total)
	}

	got, err := env.tabulation.Summarize(context.Background(), "cat-gown", contestant.DivisionFemale)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(got.Standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got.Standings))
	}

	wantRanks := []int{1, 1, 3, 4}
	wantTied := []bool{true, true, false, false}
	for i, row := range got.Standings {
		if row.Rank != wantRanks[i] {
			t.Fatalf("row %d: rank got=%d want=%d (%+v)", i, row.Rank, wantRanks[i], row)
		}
		if row.Tied != wantTied[i] {
			t.Fatalf("row %d: tied got=%v want=%v", i, row.Tied, wantTied[i])
		}
	}
	// Exact ties break by contestant number for a stable board.
	if got.Standings[0].ContestantID != "c1" || got.Standings[1].ContestantID != "c2" {
		t.Fatalf("unexpected tie order: %s then %s", got.Standings[0].ContestantID, got.Standings[1].ContestantID)
	}
}

func TestTabulationService_Summarize_ExcludesMissingJudges(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j1 := env.seedJudge("j1", "Judge One", contestant.DivisionMale)
	j2 := env.seedJudge("j2", "Judge Two", contestant.DivisionMale)
	env.seedJudge("j3", "Judge Three", contestant.DivisionMale)
	c := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionMale)

	seedCategoryTotal(env, j1.ID, "cat-gown", c.ID, 7.8)
	seedCategoryTotal(env, j2.ID, "cat-gown", c.ID, 8.1)

	got, err := env.tabulation.Summarize(context.Background(), "cat-gown", contestant.DivisionMale)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(got.Standings) != 1 {
		t.Fatalf("expected one row, got %d", len(got.Standings))
	}
	row := got.Standings[0]
	if len(row.JudgeScores) != 2 {
		t.Fatalf("expected 2 judge totals (third judge absent), got %d", len(row.JudgeScores))
	}
	if !almostEqual(row.Average, 7.95) {
		t.Fatalf("average must divide by present judges only: got=%f want=7.95", row.Average)
	}
}

func TestTabulationService_Summarize_EmptyDivisionIsValid(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedContestant("c1", 1, "Unscored", contestant.DivisionFemale)

	got, err := env.tabulation.Summarize(context.Background(), "cat-gown", contestant.DivisionFemale)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(got.Standings) != 1 {
		t.Fatalf("expected the unscored contestant to appear, got %d rows", len(got.Standings))
	}
	row := got.Standings[0]
	if row.Average != 0 || len(row.JudgeScores) != 0 || row.Rank != 1 {
		t.Fatalf("unexpected unscored row: %+v", row)
	}
}

func TestTabulationService_Summarize_IsIdempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionMale)
	c := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionMale)
	seedCategoryTotal(env, j.ID, "cat-gown", c.ID, 8.25)

	first, err := env.tabulation.Summarize(context.Background(), "cat-gown", contestant.DivisionMale)
	if err != nil {
		t.Fatalf("first summarize: %v", err)
	}
	second, err := env.tabulation.Summarize(context.Background(), "cat-gown", contestant.DivisionMale)
	if err != nil {
		t.Fatalf("second summarize: %v", err)
	}
	if len(first.Standings) != len(second.Standings) {
		t.Fatalf("summaries differ in size: %d vs %d", len(first.Standings), len(second.Standings))
	}
	for i := range first.Standings {
		a, b := first.Standings[i], second.Standings[i]
		if a.ContestantID != b.ContestantID || a.Rank != b.Rank || !almostEqual(a.Average, b.Average) {
			t.Fatalf("summaries diverge at row %d: %+v vs %+v", i, a, b)
		}
	}
}

func TestTabulationService_Overall_AveragesCategoryAverages(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionFemale)
	c1 := env.seedContestant("c1", 1, "Alpha", contestant.DivisionFemale)
	c2 := env.seedContestant("c2", 2, "Bravo", contestant.DivisionFemale)

	seedCategoryTotal(env, j.ID, "cat-gown", c1.ID, 9.0)
	seedCategoryTotal(env, j.ID, "cat-talent", c1.ID, 8.0)
	// Bravo scored in one category only; overall averages over scored
	// categories, not over all categories.
	seedCategoryTotal(env, j.ID, "cat-gown", c2.ID, 8.2)

	got, err := env.tabulation.Overall(context.Background(), contestant.DivisionFemale)
	if err != nil {
		t.Fatalf("overall: %v", err)
	}
	if len(got.Standings) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Standings))
	}
	if got.Standings[0].ContestantID != "c1" || !almostEqual(got.Standings[0].Average, 8.5) {
		t.Fatalf("unexpected leader: %+v", got.Standings[0])
	}
	if got.Standings[1].ContestantID != "c2" || !almostEqual(got.Standings[1].Average, 8.2) {
		t.Fatalf("unexpected runner-up: %+v", got.Standings[1])
	}
}
