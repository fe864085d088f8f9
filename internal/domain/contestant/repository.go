package contestant

import "context"

type Repository interface {
	ListByDivision(ctx context.Context, division Division) ([]Contestant, error)
	GetByID(ctx context.Context, contestantID string) (Contestant, bool, error)
	Create(ctx context.Context, item Contestant) error
	CountByDivision(ctx context.Context, division Division) (int, error)
	NumberExists(ctx context.Context, division Division, number int) (bool, error)
	DeleteAll(ctx context.Context) error
}
