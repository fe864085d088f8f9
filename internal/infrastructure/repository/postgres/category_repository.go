package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	qb "github.com/dcastillo/pageant-scoring/internal/platform/querybuilder"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	query, _, err := qb.Select("*").From("categories").
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	criteriaByCategory, err := r.listCriteria(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]category.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, category.Category{
			ID:       row.PublicID,
			Label:    row.Label,
			Order:    row.Position,
			Criteria: criteriaByCategory[row.PublicID],
		})
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID string) (category.Category, bool, error) {
	query, args, err := qb.Select("*").From("categories").
		Where(qb.Eq("public_id", categoryID)).
		ToSQL()
	if err != nil {
		return category.Category{}, false, fmt.Errorf("build get category query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Category{}, false, nil
		}
		return category.Category{}, false, fmt.Errorf("get category by id: %w", err)
	}

	criteriaByCategory, err := r.listCriteria(ctx, []string{categoryID})
	if err != nil {
		return category.Category{}, false, err
	}
	return category.Category{
		ID:       row.PublicID,
		Label:    row.Label,
		Order:    row.Position,
		Criteria: criteriaByCategory[row.PublicID],
	}, true, nil
}

func (r *CategoryRepository) listCriteria(ctx context.Context, categoryIDs []string) (map[string][]category.Criterion, error) {
	builder := qb.Select("*").From("criteria")
	if len(categoryIDs) > 0 {
		values := make([]any, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			values = append(values, id)
		}
		builder = builder.Where(qb.In("category_public_id", values))
	}
	query, args, err := builder.OrderBy("category_public_id", "position").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list criteria query: %w", err)
	}

	var rows []criterionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}

	out := make(map[string][]category.Criterion)
	for _, row := range rows {
		out[row.CategoryPublicID] = append(out[row.CategoryPublicID], category.Criterion{
			ID:       row.PublicID,
			Label:    row.Label,
			MaxScore: row.MaxScore,
			Weight:   row.Weight,
			Order:    row.Position,
		})
	}
	return out, nil
}
