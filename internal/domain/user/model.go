package user

import "github.com/dcastillo/pageant-scoring/internal/domain/contestant"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleJudge Role = "judge"
)

// Principal is the authenticated caller as reported by the identity
// collaborator. Division is set only for judges.
type Principal struct {
	UserID      string
	Role        Role
	Division    contestant.Division
	DisplayName string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsJudge() bool {
	return p.Role == RoleJudge
}
