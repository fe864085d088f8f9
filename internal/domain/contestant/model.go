package contestant

import "time"

// Division is one of the two independent judging tracks. Each division has
// its own judge panel and its own leaderboard.
type Division string

const (
	DivisionMale   Division = "male"
	DivisionFemale Division = "female"
)

func ParseDivision(v string) (Division, bool) {
	switch Division(v) {
	case DivisionMale, DivisionFemale:
		return Division(v), true
	default:
		return "", false
	}
}

type Contestant struct {
	ID        string
	Number    int
	FullName  string
	Division  Division
	CreatedAt time.Time
}
