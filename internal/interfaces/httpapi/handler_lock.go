package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

type lockStateDTO struct {
	Locked bool `json:"locked"`
}

type lockDTO struct {
	JudgeID      string    `json:"judgeId"`
	CategoryID   string    `json:"categoryId"`
	ContestantID string    `json:"contestantId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetLockState reports whether the acting judge's sheet for this
// category+contestant is locked.
func (h *Handler) GetLockState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLockState")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	categoryID := strings.TrimSpace(r.PathValue("categoryID"))
	contestantID := strings.TrimSpace(r.PathValue("contestantID"))

	locked, err := h.lockService.IsLocked(ctx, principal.UserID, categoryID, contestantID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lock state failed",
			"category_id", categoryID,
			"contestant_id", contestantID,
			"judge_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockStateDTO{Locked: locked})
}

// ListMyLocks returns every lock the acting judge currently holds.
func (h *Handler) ListMyLocks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLocks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	locks, err := h.lockService.ListJudgeLocks(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list judge locks failed", "judge_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]lockDTO, 0, len(locks))
	for _, item := range locks {
		out = append(out, lockDTO{
			JudgeID:      item.JudgeID,
			CategoryID:   item.CategoryID,
			ContestantID: item.ContestantID,
			CreatedAt:    item.CreatedAt,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RemoveLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLock")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	judgeID := strings.TrimSpace(r.PathValue("judgeID"))
	categoryID := strings.TrimSpace(r.PathValue("categoryID"))
	contestantID := strings.TrimSpace(r.PathValue("contestantID"))

	if err := h.lockService.RemoveLock(ctx, principal, judgeID, categoryID, contestantID); err != nil {
		h.logger.WarnContext(ctx, "remove lock failed",
			"judge_id", judgeID,
			"category_id", categoryID,
			"contestant_id", contestantID,
			"actor_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockStateDTO{Locked: false})
}
