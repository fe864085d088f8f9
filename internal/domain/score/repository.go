package score

import "context"

type Repository interface {
	// UpsertBatch writes every score in a single transaction. Either all rows
	// land or none do.
	UpsertBatch(ctx context.Context, scores []Score) error
	ListByCategory(ctx context.Context, categoryID string) ([]Score, error)
	ListByJudgeCategoryContestant(ctx context.Context, judgeID, categoryID, contestantID string) ([]Score, error)
	DeleteAll(ctx context.Context) error
}
