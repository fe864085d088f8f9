package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	qb "github.com/dcastillo/pageant-scoring/internal/platform/querybuilder"
)

type JudgeRepository struct {
	db *sqlx.DB
}

func NewJudgeRepository(db *sqlx.DB) *JudgeRepository {
	return &JudgeRepository{db: db}
}

func (r *JudgeRepository) ListByDivision(ctx context.Context, division contestant.Division) ([]judge.Judge, error) {
	query, args, err := qb.Select("*").From("judges").
		Where(qb.Eq("division", string(division))).
		OrderBy("display_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list judges query: %w", err)
	}

	var rows []judgeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list judges by division: %w", err)
	}

	out := make([]judge.Judge, 0, len(rows))
	for _, row := range rows {
		out = append(out, judgeFromRow(row))
	}
	return out, nil
}

func (r *JudgeRepository) GetByID(ctx context.Context, judgeID string) (judge.Judge, bool, error) {
	query, args, err := qb.Select("*").From("judges").
		Where(qb.Eq("public_id", judgeID)).
		ToSQL()
	if err != nil {
		return judge.Judge{}, false, fmt.Errorf("build get judge query: %w", err)
	}

	var row judgeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return judge.Judge{}, false, nil
		}
		return judge.Judge{}, false, fmt.Errorf("get judge by id: %w", err)
	}
	return judgeFromRow(row), true, nil
}

func (r *JudgeRepository) Create(ctx context.Context, item judge.Judge) error {
	insertModel := judgeInsertModel{
		PublicID:      item.ID,
		DisplayName:   item.DisplayName,
		Division:      string(item.Division),
		CredentialRef: item.CredentialRef,
	}
	query, args, err := qb.InsertModel("judges", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert judge query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert judge: %w", err)
	}
	return nil
}

func (r *JudgeRepository) CountByDivision(ctx context.Context, division contestant.Division) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("judges").
		Where(qb.Eq("division", string(division))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count judges query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count judges by division: %w", err)
	}
	return count, nil
}

func (r *JudgeRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM judges"); err != nil {
		return fmt.Errorf("delete all judges: %w", err)
	}
	return nil
}

func judgeFromRow(row judgeTableModel) judge.Judge {
	return judge.Judge{
		ID:            row.PublicID,
		DisplayName:   row.DisplayName,
		Division:      contestant.Division(row.Division),
		CredentialRef: row.CredentialRef,
		CreatedAt:     row.CreatedAt,
	}
}
