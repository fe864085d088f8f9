package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
	"github.com/dcastillo/pageant-scoring/internal/domain/score"
	"github.com/dcastillo/pageant-scoring/internal/domain/user"
	"github.com/dcastillo/pageant-scoring/internal/events"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	idgen "github.com/dcastillo/pageant-scoring/internal/platform/id"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

// Event night limits. A pageant runs two mirrored divisions; the panel and
// roster sizes are fixed by the production, not by the software.
const (
	MaxJudgesPerDivision      = 7
	MaxContestantsPerDivision = 12
)

// CreateContestantPairInput registers one numbered slot in both divisions at
// once: pageant contestants enter as a male/female pair sharing a number.
type CreateContestantPairInput struct {
	Number     int    `json:"number" validate:"required,min=1"`
	MaleName   string `json:"maleName" validate:"required"`
	FemaleName string `json:"femaleName" validate:"required"`
}

type CreateJudgeInput struct {
	DisplayName   string `json:"displayName" validate:"required"`
	Division      string `json:"division" validate:"required,oneof=male female"`
	CredentialRef string `json:"credentialRef" validate:"required"`
}

// AdminService owns roster management and the event-night reset.
type AdminService struct {
	contestantRepo contestant.Repository
	judgeRepo      judge.Repository
	scoreRepo      score.Repository
	lockRepo       lock.Repository
	activitySvc    *ActivityService
	broker         *events.Broker
	summaryCache   *cache.Store
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewAdminService(
	contestantRepo contestant.Repository,
	judgeRepo judge.Repository,
	scoreRepo score.Repository,
	lockRepo lock.Repository,
	activitySvc *ActivityService,
	broker *events.Broker,
	summaryCache *cache.Store,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{
		contestantRepo: contestantRepo,
		judgeRepo:      judgeRepo,
		scoreRepo:      scoreRepo,
		lockRepo:       lockRepo,
		activitySvc:    activitySvc,
		broker:         broker,
		summaryCache:   summaryCache,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateContestantPair creates the male and female contestant for one number.
// The number must be unused in both divisions and neither roster may be full.
func (s *AdminService) CreateContestantPair(ctx context.Context, actor user.Principal, input CreateContestantPairInput) ([]contestant.Contestant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateContestantPair")
	defer span.End()

	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: creating contestants requires the admin role", ErrUnauthorized)
	}
	if input.Number < 1 {
		return nil, fmt.Errorf("%w: contestant number must be positive", ErrInvalidInput)
	}
	if input.MaleName == "" || input.FemaleName == "" {
		return nil, fmt.Errorf("%w: both contestant names are required", ErrInvalidInput)
	}

	for _, division := range []contestant.Division{contestant.DivisionMale, contestant.DivisionFemale} {
		taken, err := s.contestantRepo.NumberExists(ctx, division, input.Number)
		if err != nil {
			return nil, fmt.Errorf("check contestant number: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: number %d is already assigned in the %s division", ErrInvalidInput, input.Number, division)
		}
		count, err := s.contestantRepo.CountByDivision(ctx, division)
		if err != nil {
			return nil, fmt.Errorf("count contestants: %w", err)
		}
		if count >= MaxContestantsPerDivision {
			return nil, fmt.Errorf("%w: the %s division roster is full (%d contestants)", ErrInvalidInput, division, MaxContestantsPerDivision)
		}
	}

	now := s.now().UTC()
	pair := []contestant.Contestant{
		{Number: input.Number, FullName: input.MaleName, Division: contestant.DivisionMale, CreatedAt: now},
		{Number: input.Number, FullName: input.FemaleName, Division: contestant.DivisionFemale, CreatedAt: now},
	}
	for i := range pair {
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate contestant id: %w", err)
		}
		pair[i].ID = id
		if err := s.contestantRepo.Create(ctx, pair[i]); err != nil {
			return nil, fmt.Errorf("create contestant: %w", err)
		}
		s.activitySvc.Record(ctx, activity.Entry{
			ActorID:     actor.UserID,
			ActorType:   activity.ActorAdmin,
			ActorName:   actor.DisplayName,
			Action:      activity.ActionContestantCreated,
			EntityRef:   pair[i].ID,
			Description: fmt.Sprintf("Registered contestant #%d %s (%s)", pair[i].Number, pair[i].FullName, pair[i].Division),
			Metadata: map[string]string{
				"contestant_id": pair[i].ID,
				"division":      string(pair[i].Division),
				"number":        fmt.Sprintf("%d", pair[i].Number),
			},
			CreatedAt: now,
		})
	}
	if s.summaryCache != nil {
		s.summaryCache.DeletePrefix(ctx, summaryCachePrefix)
	}
	return pair, nil
}

func (s *AdminService) CreateJudge(ctx context.Context, actor user.Principal, input CreateJudgeInput) (judge.Judge, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateJudge")
	defer span.End()

	if !actor.IsAdmin() {
		return judge.Judge{}, fmt.Errorf("%w: creating judges requires the admin role", ErrUnauthorized)
	}
	division, ok := contestant.ParseDivision(input.Division)
	if !ok {
		return judge.Judge{}, fmt.Errorf("%w: unknown division %q", ErrInvalidInput, input.Division)
	}
	if input.DisplayName == "" || input.CredentialRef == "" {
		return judge.Judge{}, fmt.Errorf("%w: display name and credential reference are required", ErrInvalidInput)
	}

	count, err := s.judgeRepo.CountByDivision(ctx, division)
	if err != nil {
		return judge.Judge{}, fmt.Errorf("count judges: %w", err)
	}
	if count >= MaxJudgesPerDivision {
		return judge.Judge{}, fmt.Errorf("%w: the %s division panel is full (%d judges)", ErrInvalidInput, division, MaxJudgesPerDivision)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return judge.Judge{}, fmt.Errorf("generate judge id: %w", err)
	}
	now := s.now().UTC()
	j := judge.Judge{
		ID:            id,
		DisplayName:   input.DisplayName,
		Division:      division,
		CredentialRef: input.CredentialRef,
		CreatedAt:     now,
	}
	if err := s.judgeRepo.Create(ctx, j); err != nil {
		return judge.Judge{}, fmt.Errorf("create judge: %w", err)
	}

	s.activitySvc.Record(ctx, activity.Entry{
		ActorID:     actor.UserID,
		ActorType:   activity.ActorAdmin,
		ActorName:   actor.DisplayName,
		Action:      activity.ActionJudgeCreated,
		EntityRef:   j.ID,
		Description: fmt.Sprintf("Added judge %s to the %s panel", j.DisplayName, j.Division),
		Metadata:    map[string]string{"judge_id": j.ID, "division": string(j.Division)},
		CreatedAt:   now,
	})
	if s.summaryCache != nil {
		s.summaryCache.DeletePrefix(ctx, summaryCachePrefix)
	}
	return j, nil
}

// RecordJudgeLogin feeds judge presence into the activity stream so the admin
// console can show who is on the floor.
func (s *AdminService) RecordJudgeLogin(ctx context.Context, principal user.Principal) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RecordJudgeLogin")
	defer span.End()
	s.recordPresence(ctx, principal, activity.ActionJudgeLoggedIn, "signed in")
}

func (s *AdminService) RecordJudgeLogout(ctx context.Context, principal user.Principal) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RecordJudgeLogout")
	defer span.End()
	s.recordPresence(ctx, principal, activity.ActionJudgeLoggedOut, "signed out")
}

func (s *AdminService) recordPresence(ctx context.Context, principal user.Principal, action activity.Action, verb string) {
	if !principal.IsJudge() {
		return
	}
	s.activitySvc.Record(ctx, activity.Entry{
		ActorID:     principal.UserID,
		ActorType:   activity.ActorJudge,
		ActorName:   principal.DisplayName,
		Action:      action,
		EntityRef:   principal.UserID,
		Description: fmt.Sprintf("Judge %s %s", principal.DisplayName, verb),
		CreatedAt:   s.now().UTC(),
	})
}

// SystemReset wipes scores, locks, rosters, and the activity log, in that
// order, then writes a single surviving reset entry. Meant for the rehearsal
// to event-night transition; there is no undo.
func (s *AdminService) SystemReset(ctx context.Context, actor user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SystemReset")
	defer span.End()

	if !actor.IsAdmin() {
		return fmt.Errorf("%w: a system reset requires the admin role", ErrUnauthorized)
	}

	if err := s.scoreRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset scores: %w", err)
	}
	if err := s.lockRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset submission locks: %w", err)
	}
	if err := s.contestantRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset contestants: %w", err)
	}
	if err := s.judgeRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset judges: %w", err)
	}
	cleared, err := s.activitySvc.ClearAll(ctx, actor)
	if err != nil {
		return fmt.Errorf("reset activity log: %w", err)
	}

	now := s.now().UTC()
	if _, err := s.activitySvc.Append(ctx, activity.Entry{
		ActorID:     actor.UserID,
		ActorType:   activity.ActorAdmin,
		ActorName:   actor.DisplayName,
		Action:      activity.ActionSystemReset,
		Description: fmt.Sprintf("System reset by %s (%d activity entries cleared)", actor.DisplayName, cleared),
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("record system reset: %w", err)
	}

	if s.summaryCache != nil {
		s.summaryCache.DeletePrefix(ctx, summaryCachePrefix)
	}

	s.logger.WarnContext(ctx, "system reset completed", "actor_id", actor.UserID, "cleared_activities", cleared)
	return nil
}
