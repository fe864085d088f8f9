package activity

import "time"

type ActorType string

const (
	ActorJudge ActorType = "judge"
	ActorAdmin ActorType = "admin"
)

// Action is the closed set of domain events the feed can carry. The UI keys
// icon and grouping off these values, so new actions require a coordinated
// frontend change.
type Action string

const (
	ActionScoreSubmitted    Action = "score_submitted"
	ActionScoreUpdated      Action = "score_updated"
	ActionLockCreated       Action = "lock_created"
	ActionLockRemoved       Action = "lock_removed"
	ActionJudgeLoggedIn     Action = "judge_logged_in"
	ActionJudgeLoggedOut    Action = "judge_logged_out"
	ActionContestantCreated Action = "contestant_created"
	ActionJudgeCreated      Action = "judge_created"
	ActionSystemReset       Action = "system_reset"
)

var knownActions = map[Action]struct{}{
	ActionScoreSubmitted:    {},
	ActionScoreUpdated:      {},
	ActionLockCreated:       {},
	ActionLockRemoved:       {},
	ActionJudgeLoggedIn:     {},
	ActionJudgeLoggedOut:    {},
	ActionContestantCreated: {},
	ActionJudgeCreated:      {},
	ActionSystemReset:       {},
}

func (a Action) Valid() bool {
	_, ok := knownActions[a]
	return ok
}

// Entry is an immutable activity feed record. Entries are never mutated and
// are deletable only in bulk through the admin clear-feed operation.
type Entry struct {
	ID          string
	ActorID     string
	ActorType   ActorType
	ActorName   string
	Action      Action
	EntityRef   string
	Description string
	Metadata    map[string]string
	CreatedAt   time.Time
}
