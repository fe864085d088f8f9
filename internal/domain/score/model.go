package score

import "time"

// Score is one judge's raw value for one criterion of one contestant in one
// category. The composite key (judge, contestant, category, criterion) is
// unique; writing again overwrites, it never appends.
type Score struct {
	JudgeID      string
	ContestantID string
	CategoryID   string
	CriterionID  string
	RawValue     float64
	Weighted     float64
	UpdatedAt    time.Time
}
