package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dcastillo/pageant-scoring/internal/domain/score"
	qb "github.com/dcastillo/pageant-scoring/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) UpsertBatch(ctx context.Context, scores []score.Score) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range scores {
		insertModel := scoreInsertModel{
			JudgeID:      item.JudgeID,
			ContestantID: item.ContestantID,
			CategoryID:   item.CategoryID,
			CriterionID:  item.CriterionID,
			RawValue:     item.RawValue,
			Weighted:     item.Weighted,
		}
		query, args, err := qb.InsertModel("scores", insertModel, `ON CONFLICT (judge_id, contestant_id, category_id, criterion_id)
DO UPDATE SET
    raw_value = EXCLUDED.raw_value,
    weighted_value = EXCLUDED.weighted_value,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert score criterion=%s: %w", item.CriterionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert scores tx: %w", err)
	}
	return nil
}

func (r *ScoreRepository) ListByCategory(ctx context.Context, categoryID string) ([]score.Score, error) {
	query, args, err := qb.Select("*").From("scores").
		Where(qb.Eq("category_id", categoryID)).
		OrderBy("judge_id", "contestant_id", "criterion_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores by category query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores by category: %w", err)
	}
	return scoresFromRows(rows), nil
}

func (r *ScoreRepository) ListByJudgeCategoryContestant(ctx context.Context, judgeID, categoryID, contestantID string) ([]score.Score, error) {
	query, args, err := qb.Select("*").From("scores").
		Where(
			qb.Eq("judge_id", judgeID),
			qb.Eq("category_id", categoryID),
			qb.Eq("contestant_id", contestantID),
		).
		OrderBy("criterion_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores by submission query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores by submission: %w", err)
	}
	return scoresFromRows(rows), nil
}

func (r *ScoreRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM scores"); err != nil {
		return fmt.Errorf("delete all scores: %w", err)
	}
	return nil
}

func scoresFromRows(rows []scoreTableModel) []score.Score {
	out := make([]score.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, score.Score{
			JudgeID:      row.JudgeID,
			ContestantID: row.ContestantID,
			CategoryID:   row.CategoryID,
			CriterionID:  row.CriterionID,
			RawValue:     row.RawValue,
			Weighted:     row.Weighted,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	return out
}
