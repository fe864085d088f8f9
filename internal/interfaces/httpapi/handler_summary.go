package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

type judgeTotalDTO struct {
	JudgeID   string  `json:"judgeId"`
	JudgeName string  `json:"judgeName"`
	Total     float64 `json:"total"`
}

type standingDTO struct {
	ContestantID string          `json:"contestantId"`
	Number       int             `json:"number"`
	FullName     string          `json:"fullName"`
	Average      float64         `json:"average"`
	Rank         int             `json:"rank"`
	Tied         bool            `json:"tied"`
	JudgeScores  []judgeTotalDTO `json:"judgeScores,omitempty"`
}

type categorySummaryDTO struct {
	CategoryID string        `json:"categoryId"`
	Label      string        `json:"label"`
	Division   string        `json:"division"`
	Standings  []standingDTO `json:"standings"`
}

type overallSummaryDTO struct {
	Division  string        `json:"division"`
	Standings []standingDTO `json:"standings"`
}

func divisionFromQuery(r *http.Request) (contestant.Division, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("division"))
	division, ok := contestant.ParseDivision(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown division %q", usecase.ErrInvalidInput, raw)
	}
	return division, nil
}

func (h *Handler) GetCategorySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCategorySummary")
	defer span.End()

	division, err := divisionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	categoryID := strings.TrimSpace(r.PathValue("categoryID"))

	summary, err := h.tabulationService.Summarize(ctx, categoryID, division)
	if err != nil {
		h.logger.WarnContext(ctx, "category summary failed",
			"category_id", categoryID,
			"division", string(division),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, categorySummaryDTO{
		CategoryID: summary.CategoryID,
		Label:      summary.Label,
		Division:   string(summary.Division),
		Standings:  standingsToDTO(summary.Standings),
	})
}

func (h *Handler) GetOverallSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverallSummary")
	defer span.End()

	division, err := divisionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.tabulationService.Overall(ctx, division)
	if err != nil {
		h.logger.WarnContext(ctx, "overall summary failed", "division", string(division), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overallSummaryDTO{
		Division:  string(summary.Division),
		Standings: standingsToDTO(summary.Standings),
	})
}

func standingsToDTO(standings []usecase.ContestantStanding) []standingDTO {
	out := make([]standingDTO, 0, len(standings))
	for _, row := range standings {
		dto := standingDTO{
			ContestantID: row.ContestantID,
			Number:       row.Number,
			FullName:     row.FullName,
			Average:      round2(row.Average),
			Rank:         row.Rank,
			Tied:         row.Tied,
		}
		for _, jt := range row.JudgeScores {
			dto.JudgeScores = append(dto.JudgeScores, judgeTotalDTO{
				JudgeID:   jt.JudgeID,
				JudgeName: jt.JudgeName,
				Total:     round2(jt.Total),
			})
		}
		out = append(out, dto)
	}
	return out
}
