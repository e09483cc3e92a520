package usecases

import (
	"context"
	"sort"
	"strings"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// PendingInvite is one enriched row of get_pending_invites_for_user (§4.G).
type PendingInvite struct {
	Membership   *entities.Membership
	PoolName     string
	OwnerDisplay string
	SeasonNumber int
}

// GetPendingInvitesForUser is the usecase for §4.G
// get_pending_invites_for_user.
type GetPendingInvitesForUser struct {
	Memberships pool_out.MembershipRepository
	Pools       pool_out.PoolRepository
	Seasons     season_out.SeasonRepository
	Users       user_out.UserRepository
}

func (uc *GetPendingInvitesForUser) Exec(ctx context.Context, userID common.ID) ([]PendingInvite, error) {
	memberships, err := uc.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var invites []PendingInvite
	for _, m := range memberships {
		if m.Status != entities.StatusInvited {
			continue
		}

		pool, err := uc.Pools.GetByID(ctx, m.PoolID)
		if err != nil || pool == nil {
			continue
		}

		ownerDisplay := pool.OwnerID.Hex()
		if owner, err := uc.Users.GetByID(ctx, pool.OwnerID); err == nil && owner != nil {
			ownerDisplay = owner.DisplayName()
		}

		var seasonNumber int
		if season, err := uc.Seasons.GetByID(ctx, pool.SeasonID); err == nil && season != nil {
			seasonNumber = season.Number
		}

		invites = append(invites, PendingInvite{
			Membership:   m,
			PoolName:     pool.Name,
			OwnerDisplay: ownerDisplay,
			SeasonNumber: seasonNumber,
		})
	}

	sort.Slice(invites, func(i, j int) bool {
		iNil := invites[i].Membership.InvitedAt == nil
		jNil := invites[j].Membership.InvitedAt == nil
		if iNil != jNil {
			return iNil
		}
		return strings.ToLower(invites[i].PoolName) < strings.ToLower(invites[j].PoolName)
	})

	return invites, nil
}
