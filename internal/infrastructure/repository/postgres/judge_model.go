package postgres

import "time"

type judgeTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	DisplayName   string    `db:"display_name"`
	Division      string    `db:"division"`
	CredentialRef string    `db:"credential_ref"`
	CreatedAt     time.Time `db:"created_at"`
}

type judgeInsertModel struct {
	PublicID      string `db:"public_id"`
	DisplayName   string `db:"display_name"`
	Division      string `db:"division"`
	CredentialRef string `db:"credential_ref"`
}
