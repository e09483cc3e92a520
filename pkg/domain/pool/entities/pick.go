package entities

import (
	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

type PickResult string

const (
	PickPending PickResult = "pending"
)

// Pick is a single week's locked-in contestant choice (§3, §4.F.3).
type Pick struct {
	common.BaseEntity `bson:",inline"`

	PoolID       common.ID  `json:"pool_id" bson:"pool_id"`
	UserID       common.ID  `json:"user_id" bson:"user_id"`
	ContestantID common.ID  `json:"contestant_id" bson:"contestant_id"`
	Week         int        `json:"week" bson:"week"`
	Result       PickResult `json:"result" bson:"result"`
}

// NewPick constructs a fresh, pending pick.
func NewPick(poolID, userID, contestantID common.ID, week int) *Pick {
	return &Pick{
		BaseEntity:   common.NewEntity(),
		PoolID:       poolID,
		UserID:       userID,
		ContestantID: contestantID,
		Week:         week,
		Result:       PickPending,
	}
}
