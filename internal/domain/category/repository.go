package category

import "context"

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, categoryID string) (Category, bool, error)
}
