package judge

import (
	"context"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
)

type Repository interface {
	ListByDivision(ctx context.Context, division contestant.Division) ([]Judge, error)
	GetByID(ctx context.Context, judgeID string) (Judge, bool, error)
	Create(ctx context.Context, item Judge) error
	CountByDivision(ctx context.Context, division contestant.Division) (int, error)
	DeleteAll(ctx context.Context) error
}
