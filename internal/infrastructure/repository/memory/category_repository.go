package memory

import (
	"context"
	"sort"

	"github.com/dcastillo/pageant-scoring/internal/domain/category"
)

// CategoryRepository is read-only: the category rubric is fixed for the whole
// event, so there is no mutation surface and no locking.
type CategoryRepository struct {
	items []category.Category
}

func NewCategoryRepository(categories []category.Category) *CategoryRepository {
	sorted := make([]category.Category, len(categories))
	copy(sorted, categories)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return &CategoryRepository{items: sorted}
}

func (r *CategoryRepository) List(_ context.Context) ([]category.Category, error) {
	out := make([]category.Category, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, categoryID string) (category.Category, bool, error) {
	for _, c := range r.items {
		if c.ID == categoryID {
			return c, true, nil
		}
	}
	return category.Category{}, false, nil
}
