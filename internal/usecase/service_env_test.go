package usecase

import (
	"testing"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/user"
	"github.com/dcastillo/pageant-scoring/internal/events"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < floatTolerance
}

// gownCategory weights to 0.5/0.3/0.2 so raw scores 8, 9, 10 total 8.7.
func gownCategory() category.Category {
	return category.Category{
		ID:    "cat-gown",
		Label: "Evening Gown",
		Order: 1,
		Criteria: []category.Criterion{
			{ID: "crit-fit", Label: "Fit and Carriage", MaxScore: 10, Weight: 0.5, Order: 1},
			{ID: "crit-poise", Label: "Poise", MaxScore: 10, Weight: 0.3, Order: 2},
			{ID: "crit-impact", Label: "Stage Impact", MaxScore: 10, Weight: 0.2, Order: 3},
		},
	}
}

func talentCategory() category.Category {
	return category.Category{
		ID:    "cat-talent",
		Label: "Talent",
		Order: 2,
		Criteria: []category.Criterion{
			{ID: "crit-skill", Label: "Skill", MaxScore: 10, Weight: 0.6, Order: 1},
			{ID: "crit-stage", Label: "Stage Presence", MaxScore: 10, Weight: 0.4, Order: 2},
		},
	}
}

type testEnv struct {
	contestants *stubContestantRepository
	judges      *stubJudgeRepository
	categories  *stubCategoryRepository
	scores      *stubScoreRepository
	locks       *stubLockRepository
	activities  *stubActivityRepository
	broker      *events.Broker

	activity   *ActivityService
	scoring    *ScoringService
	lockSvc    *LockService
	tabulation *TabulationService
	admin      *AdminService
	summaries  *cache.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		contestants: &stubContestantRepository{},
		judges:      &stubJudgeRepository{},
		categories:  &stubCategoryRepository{items: []category.Category{gownCategory(), talentCategory()}},
		scores:      &stubScoreRepository{},
		locks:       &stubLockRepository{},
		activities:  &stubActivityRepository{},
	}

	logger := logging.NewNop()
	env.broker = events.NewBroker(64, logger)
	summaries := cache.NewStore(time.Minute)
	env.summaries = summaries

	activitySvc, err := NewActivityService(env.activities, &stubIDGenerator{}, env.broker, logger)
	if err != nil {
		t.Fatalf("new activity service: %v", err)
	}
	t.Cleanup(activitySvc.Close)
	env.activity = activitySvc

	env.scoring = NewScoringService(env.scores, env.locks, env.judges, env.contestants, env.categories, activitySvc, env.broker, summaries, logger)
	env.lockSvc = NewLockService(env.locks, env.judges, env.contestants, env.categories, activitySvc, env.broker, summaries, logger)
	env.tabulation = NewTabulationService(env.scores, env.contestants, env.judges, env.categories, summaries, logger)
	env.admin = NewAdminService(env.contestants, env.judges, env.scores, env.locks, activitySvc, env.broker, summaries, &stubIDGenerator{}, logger)
	return env
}

func (env *testEnv) seedJudge(id, name string, division contestant.Division) judge.Judge {
	j := judge.Judge{ID: id, DisplayName: name, Division: division, CredentialRef: "cred-" + id}
	env.judges.items = append(env.judges.items, j)
	return j
}

func (env *testEnv) seedContestant(id string, number int, name string, division contestant.Division) contestant.Contestant {
	c := contestant.Contestant{ID: id, Number: number, FullName: name, Division: division}
	env.contestants.items = append(env.contestants.items, c)
	return c
}

func judgePrincipal(j judge.Judge) user.Principal {
	return user.Principal{UserID: j.ID, Role: user.RoleJudge, Division: j.Division, DisplayName: j.DisplayName}
}

func adminPrincipal() user.Principal {
	return user.Principal{UserID: "admin-1", Role: user.RoleAdmin, DisplayName: "Tabulation Head"}
}
