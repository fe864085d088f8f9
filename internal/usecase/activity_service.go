package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/user"
	"github.com/dcastillo/pageant-scoring/internal/events"
	idgen "github.com/dcastillo/pageant-scoring/internal/platform/id"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

const (
	defaultActivityListLimit = 50
	maxActivityListLimit     = 500

	activityRetryAttempts = 3
	activityRetryDelay    = 2 * time.Second
	activityRetryWorkers  = 4
)

// ActivityService owns the append-only activity feed. Append is strict;
// Record is the best-effort variant used beside score/lock mutations: a
// failed append there is retried on a worker pool and never fails the
// triggering write.
type ActivityService struct {
	repo   activity.Repository
	idGen  idgen.Generator
	broker *events.Broker
	logger *logging.Logger
	now    func() time.Time

	retryPool  *ants.Pool
	retryDelay time.Duration
}

func NewActivityService(
	repo activity.Repository,
	idGen idgen.Generator,
	broker *events.Broker,
	logger *logging.Logger,
) (*ActivityService, error) {
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(activityRetryWorkers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create activity retry pool: %w", err)
	}

	return &ActivityService{
		repo:       repo,
		idGen:      idGen,
		broker:     broker,
		logger:     logger,
		now:        time.Now,
		retryPool:  pool,
		retryDelay: activityRetryDelay,
	}, nil
}

// Close releases the retry pool. Pending retries are abandoned.
func (s *ActivityService) Close() {
	if s.retryPool != nil {
		s.retryPool.Release()
	}
}

// Append validates and persists one entry, then notifies subscribers.
func (s *ActivityService) Append(ctx context.Context, entry activity.Entry) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.Append")
	defer span.End()

	if err := validateEntry(entry); err != nil {
		return "", err
	}

	if entry.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return "", fmt.Errorf("generate activity id: %w", err)
		}
		entry.ID = id
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	id, err := s.repo.Append(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("append activity entry: %w", err)
	}

	if s.broker != nil {
		s.broker.Publish(events.Event{
			Type:       events.TypeActivity,
			Action:     string(entry.Action),
			ActivityID: id,
			Metadata:   entry.Metadata,
			At:         entry.CreatedAt,
		})
	}

	return id, nil
}

// Record appends best-effort. On failure the entry goes to the retry pool;
// exhausted retries are dropped with an error log. Callers must treat the
// feed as diagnostic, not as the system of record.
func (s *ActivityService) Record(ctx context.Context, entry activity.Entry) {
	if _, err := s.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "activity append failed, scheduling retry",
			"action", string(entry.Action),
			"actor_id", entry.ActorID,
			"error", err,
		)
		s.scheduleRetry(context.WithoutCancel(ctx), entry, activityRetryAttempts)
	}
}

func (s *ActivityService) scheduleRetry(ctx context.Context, entry activity.Entry, attemptsLeft int) {
	submitErr := s.retryPool.Submit(func() {
		time.Sleep(s.retryDelay)
		if _, err := s.Append(ctx, entry); err == nil {
			return
		} else if attemptsLeft > 1 {
			s.scheduleRetry(ctx, entry, attemptsLeft-1)
		} else {
			s.logger.Error("activity entry dropped after retries",
				"action", string(entry.Action),
				"actor_id", entry.ActorID,
				"description", entry.Description,
			)
		}
	})
	if submitErr != nil {
		s.logger.Error("activity retry pool rejected task",
			"action", string(entry.Action),
			"error", submitErr,
		)
	}
}

// ListRecent returns entries newest-first. Zero or negative limit falls back
// to the default page size.
func (s *ActivityService) ListRecent(ctx context.Context, limit int, since *time.Time) ([]activity.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.ListRecent")
	defer span.End()

	if limit <= 0 {
		limit = defaultActivityListLimit
	}
	if limit > maxActivityListLimit {
		limit = maxActivityListLimit
	}

	entries, err := s.repo.ListRecent(ctx, limit, since)
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	return entries, nil
}

// ClearAll wipes the feed. Destructive and irreversible, admin only.
func (s *ActivityService) ClearAll(ctx context.Context, actor user.Principal) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.ClearAll")
	defer span.End()

	if !actor.IsAdmin() {
		return 0, fmt.Errorf("%w: clearing the activity feed requires the admin role", ErrUnauthorized)
	}

	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear activity feed: %w", err)
	}

	s.logger.InfoContext(ctx, "activity feed cleared",
		"actor_id", actor.UserID,
		"removed", count,
	)
	return count, nil
}

func validateEntry(entry activity.Entry) error {
	if !entry.Action.Valid() {
		return fmt.Errorf("%w: unknown activity action %q", ErrInvalidInput, entry.Action)
	}
	if strings.TrimSpace(entry.Description) == "" {
		return fmt.Errorf("%w: activity description cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(entry.ActorID) == "" {
		return fmt.Errorf("%w: activity actor id cannot be empty", ErrInvalidInput)
	}
	switch entry.ActorType {
	case activity.ActorJudge, activity.ActorAdmin:
	default:
		return fmt.Errorf("%w: unknown actor type %q", ErrInvalidInput, entry.ActorType)
	}
	return nil
}
