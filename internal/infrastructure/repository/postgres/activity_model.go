package postgres

import (
	"database/sql"
	"time"
)

type activityTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	ActorID     string         `db:"actor_id"`
	ActorType   string         `db:"actor_type"`
	ActorName   string         `db:"actor_name"`
	Action      string         `db:"action"`
	EntityRef   sql.NullString `db:"entity_ref"`
	Description string         `db:"description"`
	Metadata    sql.NullString `db:"metadata"`
	CreatedAt   time.Time      `db:"created_at"`
}

type activityInsertModel struct {
	PublicID    string         `db:"public_id"`
	ActorID     string         `db:"actor_id"`
	ActorType   string         `db:"actor_type"`
	ActorName   string         `db:"actor_name"`
	Action      string         `db:"action"`
	EntityRef   sql.NullString `db:"entity_ref"`
	Description string         `db:"description"`
	Metadata    sql.NullString `db:"metadata"`
	CreatedAt   time.Time      `db:"created_at"`
}
