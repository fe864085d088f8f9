package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

type activityEntryDTO struct {
	ID          string            `json:"id"`
	ActorID     string            `json:"actorId"`
	ActorType   string            `json:"actorType"`
	ActorName   string            `json:"actorName"`
	Action      string            `json:"action"`
	EntityRef   string            `json:"entityRef,omitempty"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListActivity")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok || !principal.IsAdmin() {
		writeError(ctx, w, fmt.Errorf("%w: the activity feed requires the admin role", usecase.ErrUnauthorized))
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	var since *time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: since must be RFC 3339", usecase.ErrInvalidInput))
			return
		}
		since = &parsed
	}

	entries, err := h.activityService.ListRecent(ctx, limit, since)
	if err != nil {
		h.logger.WarnContext(ctx, "list activity failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]activityEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, activityEntryDTO{
			ID:          entry.ID,
			ActorID:     entry.ActorID,
			ActorType:   string(entry.ActorType),
			ActorName:   entry.ActorName,
			Action:      string(entry.Action),
			EntityRef:   entry.EntityRef,
			Description: entry.Description,
			Metadata:    entry.Metadata,
			CreatedAt:   entry.CreatedAt,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ClearActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearActivity")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	count, err := h.activityService.ClearAll(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "clear activity failed", "actor_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"removed": count})
}
