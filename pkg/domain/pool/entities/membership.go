package entities

import (
	"sort"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

type MembershipRole string

const (
	RoleOwner  MembershipRole = "owner"
	RoleMember MembershipRole = "member"
)

type MembershipStatus string

const (
	StatusInvited   MembershipStatus = "invited"
	StatusActive    MembershipStatus = "active"
	StatusDeclined  MembershipStatus = "declined"
	StatusEliminated MembershipStatus = "eliminated"
	StatusWinner    MembershipStatus = "winner"
)

type EliminationReason string

const (
	ReasonMissedPick          EliminationReason = "missed_pick"
	ReasonContestantVotedOut  EliminationReason = "contestant_voted_out"
	ReasonNoOptionsLeft       EliminationReason = "no_options_left"
)

// Membership is the per-(pool,user) state machine record (§3, §4.F.2).
type Membership struct {
	PoolID common.ID      `json:"pool_id" bson:"pool_id"`
	UserID common.ID      `json:"user_id" bson:"user_id"`
	Role   MembershipRole `json:"role" bson:"role"`
	Status MembershipStatus `json:"status" bson:"status"`

	JoinedAt  *time.Time `json:"joined_at,omitempty" bson:"joined_at,omitempty"`
	InvitedAt *time.Time `json:"invited_at,omitempty" bson:"invited_at,omitempty"`

	EliminationReason *EliminationReason `json:"elimination_reason,omitempty" bson:"elimination_reason,omitempty"`
	EliminatedWeek    *int               `json:"eliminated_week,omitempty" bson:"eliminated_week,omitempty"`
	EliminatedDate    *time.Time         `json:"eliminated_date,omitempty" bson:"eliminated_date,omitempty"`

	FinishedWeek *int       `json:"finished_week,omitempty" bson:"finished_week,omitempty"`
	FinishedDate *time.Time `json:"finished_date,omitempty" bson:"finished_date,omitempty"`
	FinalRank    *int       `json:"final_rank,omitempty" bson:"final_rank,omitempty"`

	Score               int         `json:"score" bson:"score"`
	AvailableContestants []common.ID `json:"available_contestants" bson:"available_contestants"`
}

// NewOwnerMembership builds the owner's active membership created alongside
// the pool.
func NewOwnerMembership(poolID, userID common.ID, now time.Time) *Membership {
	return &Membership{
		PoolID:               poolID,
		UserID:               userID,
		Role:                 RoleOwner,
		Status:               StatusActive,
		JoinedAt:             &now,
		Score:                0,
		AvailableContestants: []common.ID{},
	}
}

// NewInvitedMembership builds a member invitation record.
func NewInvitedMembership(poolID, userID common.ID, now time.Time) *Membership {
	return &Membership{
		PoolID:               poolID,
		UserID:               userID,
		Role:                 RoleMember,
		Status:               StatusInvited,
		InvitedAt:            &now,
		Score:                0,
		AvailableContestants: []common.ID{},
	}
}

// IsActive reports whether the membership can currently lock picks.
func (m *Membership) IsActive() bool {
	return m.Status == StatusActive
}

// IsTerminal reports whether the membership has reached a terminal status
// (I6).
func (m *Membership) IsTerminal() bool {
	switch m.Status {
	case StatusDeclined, StatusEliminated, StatusWinner:
		return true
	default:
		return false
	}
}

// Accept transitions invited -> active (§4.F.2).
func (m *Membership) Accept(now time.Time) {
	m.Status = StatusActive
	m.JoinedAt = &now
}

// Decline transitions invited -> declined and zeroes cache fields.
func (m *Membership) Decline() {
	m.Status = StatusDeclined
	m.Score = 0
	m.AvailableContestants = []common.ID{}
}

// Reinvite resets a membership back to invited, clearing any prior
// elimination/rank fields (used by invite_user_to_pool, §4.G).
func (m *Membership) Reinvite(now time.Time) {
	m.Status = StatusInvited
	m.InvitedAt = &now
	m.JoinedAt = nil
	m.EliminationReason = nil
	m.EliminatedWeek = nil
	m.EliminatedDate = nil
	m.FinishedWeek = nil
	m.FinishedDate = nil
	m.FinalRank = nil
	m.Score = 0
	m.AvailableContestants = []common.ID{}
}

// Eliminate transitions active -> eliminated (§4.F.2, Stage 1-3 of
// advance_pool_week).
func (m *Membership) Eliminate(reason EliminationReason, week int, now time.Time) {
	m.Status = StatusEliminated
	m.EliminationReason = &reason
	m.EliminatedWeek = &week
	m.EliminatedDate = &now
	m.Score = 0
	m.AvailableContestants = []common.ID{}
}

// PromoteToWinner transitions active or eliminated (tie-closure) -> winner.
func (m *Membership) PromoteToWinner(week int, now time.Time) {
	m.Status = StatusWinner
	rank := 1
	m.FinalRank = &rank
	m.FinishedWeek = &week
	m.FinishedDate = &now
	m.Score = 0
	m.AvailableContestants = []common.ID{}
}

// SetAvailable applies the result of score recomputation (§4.F.4),
// preserving invariant I1 by construction.
func (m *Membership) SetAvailable(available []common.ID) {
	sorted := append([]common.ID(nil), available...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hex() < sorted[j].Hex() })
	m.AvailableContestants = sorted
	m.Score = len(sorted)
}

// ClearAvailable zeros the cache fields, used for non-active memberships.
func (m *Membership) ClearAvailable() {
	m.AvailableContestants = []common.ID{}
	m.Score = 0
}
