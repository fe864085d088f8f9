package postgres

import "time"

type lockTableModel struct {
	JudgeID      string    `db:"judge_id"`
	CategoryID   string    `db:"category_id"`
	ContestantID string    `db:"contestant_id"`
	CreatedBy    string    `db:"created_by"`
	CreatedAt    time.Time `db:"created_at"`
}

type lockInsertModel struct {
	JudgeID      string `db:"judge_id"`
	CategoryID   string `db:"category_id"`
	ContestantID string `db:"contestant_id"`
	CreatedBy    string `db:"created_by"`
}
