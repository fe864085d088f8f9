package judge

import (
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
)

type Judge struct {
	ID            string
	DisplayName   string
	Division      contestant.Division
	CredentialRef string
	CreatedAt     time.Time
}
