package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

type criterionScoreRequest struct {
	CriterionID string  `json:"criterionId" validate:"required"`
	RawValue    float64 `json:"rawValue"`
}

type submitScoresRequest struct {
	Scores []criterionScoreRequest `json:"scores" validate:"required,min=1,dive"`
}

type submitScoresResponse struct {
	Action string  `json:"action"`
	Total  float64 `json:"total"`
	Locked bool    `json:"locked"`
}

type submittedScoreDTO struct {
	CriterionID string  `json:"criterionId"`
	RawValue    float64 `json:"rawValue"`
	Weighted    float64 `json:"weighted"`
}

func (h *Handler) SubmitScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScores")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	categoryID := strings.TrimSpace(r.PathValue("categoryID"))
	contestantID := strings.TrimSpace(r.PathValue("contestantID"))

	var req submitScoresRequest
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

	input := usecase.SubmitCategoryInput{
		JudgeID:      principal.UserID,
		CategoryID:   categoryID,
		ContestantID: contestantID,
		Scores:       make([]usecase.CriterionScore, 0, len(req.Scores)),
	}
	for _, cs := range req.Scores {
		input.Scores = append(input.Scores, usecase.CriterionScore{
			CriterionID: cs.CriterionID,
			RawValue:    cs.RawValue,
		})
	}

	result, err := h.scoringService.SubmitCategory(ctx, principal, input)
	if err != nil {
		h.logger.WarnContext(ctx, "submit scores failed",
			"category_id", categoryID,
			"contestant_id", contestantID,
			"judge_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submitScoresResponse{
		Action: string(result.Action),
		Total:  round2(result.Total),
		Locked: true,
	})
}

// GetSubmittedScores returns the acting judge's stored rows for one sheet,
// used to render a locked sheet read-only.
func (h *Handler) GetSubmittedScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSubmittedScores")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	categoryID := strings.TrimSpace(r.PathValue("categoryID"))
	contestantID := strings.TrimSpace(r.PathValue("contestantID"))

	rows, err := h.scoringService.ListSubmitted(ctx, principal, categoryID, contestantID)
	if err != nil {
		h.logger.WarnContext(ctx, "list submitted scores failed",
			"category_id", categoryID,
			"contestant_id", contestantID,
			"judge_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	out := make([]submittedScoreDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, submittedScoreDTO{
			CriterionID: row.CriterionID,
			RawValue:    row.RawValue,
			Weighted:    round2(row.Weighted),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
