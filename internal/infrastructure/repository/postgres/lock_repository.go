package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
	qb "github.com/dcastillo/pageant-scoring/internal/platform/querybuilder"
)

type LockRepository struct {
	db *sqlx.DB
}

func NewLockRepository(db *sqlx.DB) *LockRepository {
	return &LockRepository{db: db}
}

func (r *LockRepository) Exists(ctx context.Context, judgeID, categoryID, contestantID string) (bool, error) {
	query, args, err := qb.Select("1").From("submission_locks").
		Where(
			qb.Eq("judge_id", judgeID),
			qb.Eq("category_id", categoryID),
			qb.Eq("contestant_id", contestantID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build lock exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check submission lock: %w", err)
	}
	return true, nil
}

// Create relies on the composite primary key: ON CONFLICT DO NOTHING plus the
// affected-row count makes the insert the atomic arbiter between two racing
// submissions.
func (r *LockRepository) Create(ctx context.Context, item lock.SubmissionLock) error {
	insertModel := lockInsertModel{
		JudgeID:      item.JudgeID,
		CategoryID:   item.CategoryID,
		ContestantID: item.ContestantID,
		CreatedBy:    item.CreatedBy,
	}
	query, args, err := qb.InsertModel("submission_locks", insertModel, "ON CONFLICT (judge_id, category_id, contestant_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert lock query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert submission lock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read insert lock result: %w", err)
	}
	if affected == 0 {
		return lock.ErrAlreadyLocked
	}
	return nil
}

func (r *LockRepository) Delete(ctx context.Context, judgeID, categoryID, contestantID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM submission_locks WHERE judge_id = $1 AND category_id = $2 AND contestant_id = $3",
		judgeID, categoryID, contestantID,
	)
	if err != nil {
		return fmt.Errorf("delete submission lock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read delete lock result: %w", err)
	}
	if affected == 0 {
		return lock.ErrNotFound
	}
	return nil
}

func (r *LockRepository) ListByJudge(ctx context.Context, judgeID string) ([]lock.SubmissionLock, error) {
	query, args, err := qb.Select("*").From("submission_locks").
		Where(qb.Eq("judge_id", judgeID)).
		OrderBy("category_id", "contestant_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list locks by judge query: %w", err)
	}

	var rows []lockTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list locks by judge: %w", err)
	}

	out := make([]lock.SubmissionLock, 0, len(rows))
	for _, row := range rows {
		out = append(out, lock.SubmissionLock{
			JudgeID:      row.JudgeID,
			CategoryID:   row.CategoryID,
			ContestantID: row.ContestantID,
			CreatedBy:    row.CreatedBy,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

func (r *LockRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM submission_locks"); err != nil {
		return fmt.Errorf("delete all submission locks: %w", err)
	}
	return nil
}
