package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	qb "github.com/dcastillo/pageant-scoring/internal/platform/querybuilder"
)

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, entry activity.Entry) (string, error) {
	metadata := sql.NullString{}
	if len(entry.Metadata) > 0 {
		encoded, err := sonic.MarshalString(entry.Metadata)
		if err != nil {
			return "", fmt.Errorf("encode activity metadata: %w", err)
		}
		metadata = sql.NullString{String: encoded, Valid: true}
	}

	insertModel := activityInsertModel{
		PublicID:    entry.ID,
		ActorID:     entry.ActorID,
		ActorType:   string(entry.ActorType),
		ActorName:   entry.ActorName,
		Action:      string(entry.Action),
		EntityRef:   nullableString(entry.EntityRef),
		Description: entry.Description,
		Metadata:    metadata,
		CreatedAt:   entry.CreatedAt,
	}
	query, args, err := qb.InsertModel("activity_log", insertModel, "")
	if err != nil {
		return "", fmt.Errorf("build insert activity query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert activity entry: %w", err)
	}
	return entry.ID, nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int, since *time.Time) ([]activity.Entry, error) {
	builder := qb.Select("*").From("activity_log")
	if since != nil {
		builder = builder.Where(qb.Expr("created_at > ?", *since))
	}
	query, args, err := builder.
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent activity query: %w", err)
	}

	var rows []activityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}

	out := make([]activity.Entry, 0, len(rows))
	for _, row := range rows {
		entry := activity.Entry{
			ID:          row.PublicID,
			ActorID:     row.ActorID,
			ActorType:   activity.ActorType(row.ActorType),
			ActorName:   row.ActorName,
			Action:      activity.Action(row.Action),
			EntityRef:   row.EntityRef.String,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		}
		if row.Metadata.Valid && row.Metadata.String != "" {
			if err := sonic.UnmarshalString(row.Metadata.String, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("decode activity metadata id=%s: %w", row.PublicID, err)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *ActivityRepository) DeleteAll(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM activity_log")
	if err != nil {
		return 0, fmt.Errorf("delete all activity entries: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read delete activity result: %w", err)
	}
	return int(affected), nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
