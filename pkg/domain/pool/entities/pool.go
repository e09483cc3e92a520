package entities

import (
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

type PoolStatus string

const (
	PoolOpen      PoolStatus = "open"
	PoolCompleted PoolStatus = "completed"
)

// PoolSettings is an opaque bag of owner-configurable preferences; the
// lifecycle engine does not interpret its contents.
type PoolSettings map[string]interface{}

// Pool is the contest aggregate root (§3, §4.F).
type Pool struct {
	common.BaseEntity `bson:",inline"`

	Name     string    `json:"name" bson:"name"`
	OwnerID  common.ID `json:"owner_id" bson:"owner_id"`
	SeasonID common.ID `json:"season_id" bson:"season_id"`

	CurrentWeek int          `json:"current_week" bson:"current_week"`
	StartWeek   int          `json:"start_week" bson:"start_week"`
	Settings    PoolSettings `json:"settings,omitempty" bson:"settings,omitempty"`

	Status PoolStatus `json:"status" bson:"status"`

	IsCompetitive        bool       `json:"is_competitive" bson:"is_competitive"`
	CompetitiveSinceWeek *int       `json:"competitive_since_week,omitempty" bson:"competitive_since_week,omitempty"`
	CompletedWeek        *int       `json:"completed_week,omitempty" bson:"completed_week,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`

	Winners []common.ID `json:"winners" bson:"winners"`
}

// NewPool constructs a fresh, open pool per create_pool (§4.F.1).
func NewPool(name string, ownerID, seasonID common.ID, startWeek int) *Pool {
	return &Pool{
		BaseEntity:    common.NewEntity(),
		Name:          name,
		OwnerID:       ownerID,
		SeasonID:      seasonID,
		CurrentWeek:   startWeek,
		StartWeek:     startWeek,
		Status:        PoolOpen,
		IsCompetitive: false,
		Winners:       []common.ID{},
	}
}

func (p *Pool) IsCompleted() bool {
	return p.Status == PoolCompleted
}

// MarkCompetitive latches is_competitive true and stamps
// competitive_since_week, honoring I8 monotonicity. No-op if already
// competitive.
func (p *Pool) MarkCompetitive(atWeek int) {
	if p.IsCompetitive {
		return
	}
	p.IsCompetitive = true
	week := atWeek
	p.CompetitiveSinceWeek = &week
}

// Complete transitions the pool to completed per Stage 5 of advance_pool_week.
func (p *Pool) Complete(week int, now time.Time, winners []common.ID) {
	p.Status = PoolCompleted
	p.CompletedWeek = &week
	p.CompletedAt = &now
	p.Winners = winners
}
