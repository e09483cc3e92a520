package usecases

import (
	"context"
	"sort"
	"strings"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// MembershipRow enriches a membership with its user's display name (§4.G
// list_pool_memberships).
type MembershipRow struct {
	Membership  *entities.Membership
	DisplayName string
}

// ListPoolMemberships is the usecase for §4.G list_pool_memberships.
type ListPoolMemberships struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Users       user_out.UserRepository
}

func (uc *ListPoolMemberships) Exec(ctx context.Context, poolID, ownerID common.ID) ([]MembershipRow, error) {
	pool, err := uc.Pools.GetByID(ctx, poolID)
	if err != nil || pool == nil {
		return nil, common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex())
	}
	if pool.OwnerID != ownerID {
		return nil, common.NewErrForbidden("owner-only")
	}

	members, err := uc.Memberships.ListByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	rows := make([]MembershipRow, 0, len(members))
	for _, m := range members {
		display := m.UserID.Hex()
		if u, err := uc.Users.GetByID(ctx, m.UserID); err == nil && u != nil {
			display = u.DisplayName()
		}
		rows = append(rows, MembershipRow{Membership: m, DisplayName: display})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		aNotOwner := a.Membership.Role != entities.RoleOwner
		bNotOwner := b.Membership.Role != entities.RoleOwner
		if aNotOwner != bNotOwner {
			return !aNotOwner
		}
		aNotVisible := !isLeaderboardOwnerView(a.Membership.Status)
		bNotVisible := !isLeaderboardOwnerView(b.Membership.Status)
		if aNotVisible != bNotVisible {
			return !aNotVisible
		}
		return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
	})

	return rows, nil
}

func isLeaderboardOwnerView(status entities.MembershipStatus) bool {
	return status == entities.StatusActive || status == entities.StatusWinner
}
