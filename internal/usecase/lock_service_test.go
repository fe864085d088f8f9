package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
)

func TestLockService_RemoveLock_AdminOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionMale)
	c := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionMale)
	ctx := context.Background()

	if _, err := env.scoring.SubmitCategory(ctx, judgePrincipal(j), gownSheet(j.ID, c.ID, 7, 8, 9)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := env.lockSvc.RemoveLock(ctx, judgePrincipal(j), j.ID, "cat-gown", c.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for judge actor, got %v", err)
	}
	locked, _ := env.lockSvc.IsLocked(ctx, j.ID, "cat-gown", c.ID)
	if !locked {
		t.Fatalf("denied unlock must leave the lock in place")
	}

	if err := env.lockSvc.RemoveLock(ctx, adminPrincipal(), j.ID, "cat-gown", c.ID); err != nil {
		t.Fatalf("admin unlock: %v", err)
	}
	locked, _ = env.lockSvc.IsLocked(ctx, j.ID, "cat-gown", c.ID)
	if locked {
		t.Fatalf("lock should be gone after admin unlock")
	}

	actions := env.activities.actions()
	if len(actions) == 0 || actions[len(actions)-1] != activity.ActionLockRemoved {
		t.Fatalf("expected a lock_removed entry, trail=%v", actions)
	}
}

func TestLockService_RemoveLock_MissingLock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.lockSvc.RemoveLock(context.Background(), adminPrincipal(), "j1", "cat-gown", "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing lock, got %v", err)
	}
}

func TestLockService_RemoveLock_TouchesOnlyOneKey(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	j := env.seedJudge("j1", "Judge One", contestant.DivisionFemale)
	c1 := env.seedContestant("c1", 1, "Contestant One", contestant.DivisionFemale)
	c2 := env.seedContestant("c2", 2, "Contestant Two", contestant.DivisionFemale)
	ctx := context.Background()

	if _, err := env.scoring.SubmitCategory(ctx, judgePrincipal(j), gownSheet(j.ID, c1.ID, 7, 8, 9)); err != nil {
		t.Fatalf("submit c1: %v", err)
	}
	if _, err := env.scoring.SubmitCategory(ctx, judgePrincipal(j), gownSheet(j.ID, c2.ID, 6, 7, 8)); err != nil {
		t.Fatalf("submit c2: %v", err)
	}

	if err := env.lockSvc.RemoveLock(ctx, adminPrincipal(), j.ID, "cat-gown", c1.ID); err != nil {
		t.Fatalf("remove lock: %v", err)
	}

	locks, err := env.lockSvc.ListJudgeLocks(ctx, j.ID)
	if err != nil {
		t.Fatalf("list judge locks: %v", err)
	}
	if len(locks) != 1 {
		t.Fatalf("expected exactly one remaining lock, got %d", len(locks))
	}
	if locks[0].ContestantID != c2.ID {
		t.Fatalf("wrong lock survived: %+v", locks[0])
	}
}
