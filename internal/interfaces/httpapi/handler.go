package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/events"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

type Handler struct {
	scoringService    *usecase.ScoringService
	lockService       *usecase.LockService
	tabulationService *usecase.TabulationService
	activityService   *usecase.ActivityService
	adminService      *usecase.AdminService
	contestantRepo    contestant.Repository
	judgeRepo         judge.Repository
	categoryRepo      category.Repository
	broker            *events.Broker
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	scoringService *usecase.ScoringService,
	lockService *usecase.LockService,
	tabulationService *usecase.TabulationService,
	activityService *usecase.ActivityService,
	adminService *usecase.AdminService,
	contestantRepo contestant.Repository,
	judgeRepo judge.Repository,
	categoryRepo category.Repository,
	broker *events.Broker,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoringService:    scoringService,
		lockService:       lockService,
		tabulationService: tabulationService,
		activityService:   activityService,
		adminService:      adminService,
		contestantRepo:    contestantRepo,
		judgeRepo:         judgeRepo,
		categoryRepo:      categoryRepo,
		broker:            broker,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// round2 is display rounding only. Ranking and tie detection happen upstream
// on the unrounded values.
func round2(v float64) float64 {
	if v < 0 {
		return -round2(-v)
	}
	return float64(int(v*100+0.5)) / 100.0
}
