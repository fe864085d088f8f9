package postgres

import "time"

type contestantTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Number    int       `db:"number"`
	FullName  string    `db:"full_name"`
	Division  string    `db:"division"`
	CreatedAt time.Time `db:"created_at"`
}

type contestantInsertModel struct {
	PublicID string `db:"public_id"`
	Number   int    `db:"number"`
	FullName string `db:"full_name"`
	Division string `db:"division"`
}
