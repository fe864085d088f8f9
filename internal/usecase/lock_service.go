package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
	"github.com/dcastillo/pageant-scoring/internal/domain/user"
	"github.com/dcastillo/pageant-scoring/internal/events"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

// LockService is the admin-facing side of the submission state machine.
// Locks are only ever created by the score write path; this service answers
// lock queries and performs the admin unlock transition.
type LockService struct {
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

func NewLockService(
	lockRepo lock.Repository,
	judgeRepo judge.Repository,
	contestantRepo contestant.Repository,
	categoryRepo category.Repository,
	activitySvc *ActivityService,
	broker *events.Broker,
	summaryCache *cache.Store,
	logger *logging.Logger,
) *LockService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LockService{
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

func (s *LockService) IsLocked(ctx context.Context, judgeID, categoryID, contestantID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockService.IsLocked")
	defer span.End()

	locked, err := s.lockRepo.Exists(ctx, judgeID, categoryID, contestantID)
	if err != nil {
		return false, fmt.Errorf("check submission lock: %w", err)
	}
	return locked, nil
}

// ListJudgeLocks returns every lock held by one judge, for the lock
// indicators on the judge and admin dashboards.
func (s *LockService) ListJudgeLocks(ctx context.Context, judgeID string) ([]lock.SubmissionLock, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockService.ListJudgeLocks")
	defer span.End()

	locks, err := s.lockRepo.ListByJudge(ctx, judgeID)
	if err != nil {
		return nil, fmt.Errorf("list submission locks by judge: %w", err)
	}
	return locks, nil
}

// RemoveLock performs the admin unlock transition for exactly one
// (judge, category, contestant) key. Unlocking a key that is not locked is an
// error: the admin UI always acts from an observed locked state, so a miss
// means the UI and the store disagree.
func (s *LockService) RemoveLock(ctx context.Context, actor user.Principal, judgeID, categoryID, contestantID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockService.RemoveLock")
	defer span.End()

	if !actor.IsAdmin() {
		return fmt.Errorf("%w: removing a submission lock requires the admin role", ErrUnauthorized)
	}

	if err := s.lockRepo.Delete(ctx, judgeID, categoryID, contestantID); err != nil {
		if errors.Is(err, lock.ErrNotFound) {
			return fmt.Errorf("%w: no submission lock for judge=%s category=%s contestant=%s", ErrNotFound, judgeID, categoryID, contestantID)
		}
		return fmt.Errorf("delete submission lock: %w", err)
	}

	now := s.now().UTC()
	s.activitySvc.Record(ctx, activity.Entry{
		ActorID:     actor.UserID,
		ActorType:   activity.ActorAdmin,
		ActorName:   actor.DisplayName,
		Action:      activity.ActionLockRemoved,
		EntityRef:   contestantID,
		Description: s.describeUnlock(ctx, judgeID, categoryID, contestantID),
		Metadata: map[string]string{
			"judge_id":      judgeID,
			"category_id":   categoryID,
			"contestant_id": contestantID,
		},
		CreatedAt: now,
	})

	if s.broker != nil {
		s.broker.Publish(events.Event{
			Type:         events.TypeLock,
			Action:       string(activity.ActionLockRemoved),
			JudgeID:      judgeID,
			CategoryID:   categoryID,
			ContestantID: contestantID,
			At:           now,
		})
	}
	if s.summaryCache != nil {
		s.summaryCache.DeletePrefix(ctx, summaryCachePrefix)
	}

	s.logger.InfoContext(ctx, "submission lock removed",
		"actor_id", actor.UserID,
		"judge_id", judgeID,
		"category_id", categoryID,
		"contestant_id", contestantID,
	)
	return nil
}

func (s *LockService) describeUnlock(ctx context.Context, judgeID, categoryID, contestantID string) string {
	judgeName := judgeID
	if j, ok, err := s.judgeRepo.GetByID(ctx, judgeID); err == nil && ok {
		judgeName = j.DisplayName
	}
	contestantName := contestantID
	if c, ok, err := s.contestantRepo.GetByID(ctx, contestantID); err == nil && ok {
		contestantName = c.FullName
	}
	categoryLabel := categoryID
	if c, ok, err := s.categoryRepo.GetByID(ctx, categoryID); err == nil && ok {
		categoryLabel = c.Label
	}
	return fmt.Sprintf("Unlocked %s's %s scores for %s", judgeName, categoryLabel, contestantName)
}
