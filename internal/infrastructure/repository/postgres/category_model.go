package postgres

type categoryTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	Label    string `db:"label"`
	Position int    `db:"position"`
}

type criterionTableModel struct {
	ID               int64   `db:"id"`
	PublicID         string  `db:"public_id"`
	CategoryPublicID string  `db:"category_public_id"`
	Label            string  `db:"label"`
	MaxScore         float64 `db:"max_score"`
	Weight           float64 `db:"weight"`
	Position         int     `db:"position"`
}
