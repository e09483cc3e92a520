package usecases

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_entities "github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
)

// ListUserPools is the usecase for §4.D list_user_pools: pools where the
// user has a membership with status in {active, eliminated, winner}.
type ListUserPools struct {
	Memberships pool_out.MembershipRepository
	Pools       pool_out.PoolRepository
}

func (uc *ListUserPools) Exec(ctx context.Context, userID common.ID) ([]*pool_entities.Pool, error) {
	memberships, err := uc.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pools []*pool_entities.Pool
	for _, m := range memberships {
		if !isVisibleMembership(m.Status) {
			continue
		}
		p, err := uc.Pools.GetByID(ctx, m.PoolID)
		if err != nil || p == nil {
			continue
		}
		pools = append(pools, p)
	}

	return pools, nil
}

func isVisibleMembership(status pool_entities.MembershipStatus) bool {
	switch status {
	case pool_entities.StatusActive, pool_entities.StatusEliminated, pool_entities.StatusWinner:
		return true
	default:
		return false
	}
}
