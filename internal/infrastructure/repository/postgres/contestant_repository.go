package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	qb "github.com/dcastillo/pageant-scoring/internal/platform/querybuilder"
)

type ContestantRepository struct {
	db *sqlx.DB
}

func NewContestantRepository(db *sqlx.DB) *ContestantRepository {
	return &ContestantRepository{db: db}
}

func (r *ContestantRepository) ListByDivision(ctx context.Context, division contestant.Division) ([]contestant.Contestant, error) {
	query, args, err := qb.Select("*").From("contestants").
		Where(qb.Eq("division", string(division))).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contestants query: %w", err)
	}

	var rows []contestantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contestants by division: %w", err)
	}

	out := make([]contestant.Contestant, 0, len(rows))
	for _, row := range rows {
		out = append(out, contestantFromRow(row))
	}
	return out, nil
}

func (r *ContestantRepository) GetByID(ctx context.Context, contestantID string) (contestant.Contestant, bool, error) {
	query, args, err := qb.Select("*").From("contestants").
		Where(qb.Eq("public_id", contestantID)).
		ToSQL()
	if err != nil {
		return contestant.Contestant{}, false, fmt.Errorf("build get contestant query: %w", err)
	}

	var row contestantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contestant.Contestant{}, false, nil
		}
		return contestant.Contestant{}, false, fmt.Errorf("get contestant by id: %w", err)
	}
	return contestantFromRow(row), true, nil
}

func (r *ContestantRepository) Create(ctx context.Context, item contestant.Contestant) error {
	insertModel := contestantInsertModel{
		PublicID: item.ID,
		Number:   item.Number,
		FullName: item.FullName,
		Division: string(item.Division),
	}
	query, args, err := qb.InsertModel("contestants", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert contestant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contestant: %w", err)
	}
	return nil
}

func (r *ContestantRepository) CountByDivision(ctx context.Context, division contestant.Division) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("contestants").
		Where(qb.Eq("division", string(division))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count contestants query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count contestants by division: %w", err)
	}
	return count, nil
}

func (r *ContestantRepository) NumberExists(ctx context.Context, division contestant.Division, number int) (bool, error) {
	query, args, err := qb.Select("1").From("contestants").
		Where(
			qb.Eq("division", string(division)),
			qb.Eq("number", number),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build contestant number exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check contestant number: %w", err)
	}
	return true, nil
}

func (r *ContestantRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM contestants"); err != nil {
		return fmt.Errorf("delete all contestants: %w", err)
	}
	return nil
}

func contestantFromRow(row contestantTableModel) contestant.Contestant {
	return contestant.Contestant{
		ID:        row.PublicID,
		Number:    row.Number,
		FullName:  row.FullName,
		Division:  contestant.Division(row.Division),
		CreatedAt: row.CreatedAt,
	}
}
