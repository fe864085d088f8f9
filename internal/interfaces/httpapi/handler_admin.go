package httpapi

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

type createContestantPairRequest struct {
	Number     int    `json:"number" validate:"required,min=1"`
	MaleName   string `json:"maleName" validate:"required"`
	FemaleName string `json:"femaleName" validate:"required"`
}

type createJudgeRequest struct {
	DisplayName   string `json:"displayName" validate:"required"`
	Division      string `json:"division" validate:"required,oneof=male female"`
	CredentialRef string `json:"credentialRef" validate:"required"`
}

type contestantDTO struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	FullName string `json:"fullName"`
	Division string `json:"division"`
}

type judgeDTO struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Division    string    `json:"division"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *Handler) CreateContestantPair(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateContestantPair")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createContestantPairRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pair, err := h.adminService.CreateContestantPair(ctx, principal, usecase.CreateContestantPairInput{
		Number:     req.Number,
		MaleName:   req.MaleName,
		FemaleName: req.FemaleName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create contestant pair failed", "number", req.Number, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]contestantDTO, 0, len(pair))
	for _, c := range pair {
		out = append(out, contestantDTO{
			ID:       c.ID,
			Number:   c.Number,
			FullName: c.FullName,
			Division: string(c.Division),
		})
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) CreateJudge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateJudge")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createJudgeRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	j, err := h.adminService.CreateJudge(ctx, principal, usecase.CreateJudgeInput{
		DisplayName:   req.DisplayName,
		Division:      req.Division,
		CredentialRef: req.CredentialRef,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create judge failed", "division", req.Division, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, judgeDTO{
		ID:          j.ID,
		DisplayName: j.DisplayName,
		Division:    string(j.Division),
		CreatedAt:   j.CreatedAt,
	})
}

func (h *Handler) SystemReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SystemReset")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.adminService.SystemReset(ctx, principal); err != nil {
		h.logger.WarnContext(ctx, "system reset failed", "actor_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}

// RecordLogin and RecordLogout feed judge presence into the activity stream.
// The identity collaborator owns the session itself.
func (h *Handler) RecordLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordLogin")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	h.adminService.RecordJudgeLogin(ctx, principal)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (h *Handler) RecordLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordLogout")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	h.adminService.RecordJudgeLogout(ctx, principal)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recorded"})
}
