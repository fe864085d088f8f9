package httpapi

import (
	"net/http"
)

type criterionDTO struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	MaxScore float64 `json:"maxScore"`
	Weight   float64 `json:"weight"`
	Order    int     `json:"order"`
}

type categoryDTO struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Order    int            `json:"order"`
	Criteria []criterionDTO `json:"criteria"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	categories, err := h.categoryRepo.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list categories failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]categoryDTO, 0, len(categories))
	for _, cat := range categories {
		dto := categoryDTO{ID: cat.ID, Label: cat.Label, Order: cat.Order}
		for _, criterion := range cat.Criteria {
			dto.Criteria = append(dto.Criteria, criterionDTO{
				ID:       criterion.ID,
				Label:    criterion.Label,
				MaxScore: criterion.MaxScore,
				Weight:   criterion.Weight,
				Order:    criterion.Order,
			})
		}
		out = append(out, dto)
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListContestants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContestants")
	defer span.End()

	division, err := divisionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contestants, err := h.contestantRepo.ListByDivision(ctx, division)
	if err != nil {
		h.logger.WarnContext(ctx, "list contestants failed", "division", string(division), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]contestantDTO, 0, len(contestants))
	for _, c := range contestants {
		out = append(out, contestantDTO{
			ID:       c.ID,
			Number:   c.Number,
			FullName: c.FullName,
			Division: string(c.Division),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListJudges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJudges")
	defer span.End()

	division, err := divisionFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	judges, err := h.judgeRepo.ListByDivision(ctx, division)
	if err != nil {
		h.logger.WarnContext(ctx, "list judges failed", "division", string(division), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]judgeDTO, 0, len(judges))
	for _, j := range judges {
		out = append(out, judgeDTO{
			ID:          j.ID,
			DisplayName: j.DisplayName,
			Division:    string(j.Division),
			CreatedAt:   j.CreatedAt,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
