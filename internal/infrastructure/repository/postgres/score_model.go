package postgres

import "time"

type scoreTableModel struct {
	ID           int64     `db:"id"`
	JudgeID      string    `db:"judge_id"`
	ContestantID string    `db:"contestant_id"`
	CategoryID   string    `db:"category_id"`
	CriterionID  string    `db:"criterion_id"`
	RawValue     float64   `db:"raw_value"`
	Weighted     float64   `db:"weighted_value"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type scoreInsertModel struct {
	JudgeID      string  `db:"judge_id"`
	ContestantID string  `db:"contestant_id"`
	CategoryID   string  `db:"category_id"`
	CriterionID  string  `db:"criterion_id"`
	RawValue     float64 `db:"raw_value"`
	Weighted     float64 `db:"weighted_value"`
}
