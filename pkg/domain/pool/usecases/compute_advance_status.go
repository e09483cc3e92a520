package usecases

import (
	"context"
	"sort"
	"strings"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_entities "github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// MissingMember names an active member with no pick for the current week.
type MissingMember struct {
	UserID      common.ID
	DisplayName string
}

// AdvanceStatus is the result of compute_advance_status (§4.F.6).
type AdvanceStatus struct {
	CurrentWeek      int
	ActiveMemberCount int
	LockedCount      int
	MissingCount     int
	MissingMembers   []MissingMember
	CanAdvance       bool
}

// ComputeAdvanceStatus is the usecase for §4.F.6.
type ComputeAdvanceStatus struct {
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Users       user_out.UserRepository
}

func (uc *ComputeAdvanceStatus) Exec(ctx context.Context, pool *entities.Pool, season *season_entities.Season) (*AdvanceStatus, error) {
	members, err := uc.Memberships.ListByPool(ctx, pool.ID)
	if err != nil {
		return nil, err
	}

	weekPicks, err := uc.Picks.ListByPoolWeek(ctx, pool.ID, pool.CurrentWeek)
	if err != nil {
		return nil, err
	}
	locked := make(map[common.ID]bool, len(weekPicks))
	for _, p := range weekPicks {
		locked[p.UserID] = true
	}

	var activeCount, lockedCount int
	var missing []MissingMember
	for _, m := range members {
		if m.Status != entities.StatusActive {
			continue
		}
		activeCount++
		if locked[m.UserID] {
			lockedCount++
			continue
		}

		display := m.UserID.Hex()
		if u, err := uc.Users.GetByID(ctx, m.UserID); err == nil && u != nil {
			display = u.DisplayName()
		}
		missing = append(missing, MissingMember{UserID: m.UserID, DisplayName: display})
	}

	sort.Slice(missing, func(i, j int) bool {
		return strings.ToLower(missing[i].DisplayName) < strings.ToLower(missing[j].DisplayName)
	})

	canAdvance := season != nil && season.HasEliminationForWeek(pool.CurrentWeek)

	return &AdvanceStatus{
		CurrentWeek:       pool.CurrentWeek,
		ActiveMemberCount: activeCount,
		LockedCount:       lockedCount,
		MissingCount:      len(missing),
		MissingMembers:    missing,
		CanAdvance:        canAdvance,
	}, nil
}
