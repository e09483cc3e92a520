package usecases

import (
	"context"

	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
)

// MaybeMarkPoolCompetitive is the usecase for §4.G
// _maybe_mark_pool_competitive. It is idempotent under concurrent callers:
// the store-level precondition on is_competitive==false means only one
// caller's compare-and-swap succeeds.
type MaybeMarkPoolCompetitive struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
}

func (uc *MaybeMarkPoolCompetitive) Exec(ctx context.Context, pool *entities.Pool) error {
	if pool.IsCompetitive {
		return nil
	}

	members, err := uc.Memberships.ListByPool(ctx, pool.ID)
	if err != nil {
		return err
	}

	var activeCount int
	for _, m := range members {
		if m.Status == entities.StatusActive {
			activeCount++
		}
	}
	if activeCount < 2 {
		return nil
	}

	ok, err := uc.Pools.CompareAndSwapCompetitive(ctx, pool.ID, pool.CurrentWeek)
	if err != nil {
		return err
	}
	if ok {
		pool.MarkCompetitive(pool.CurrentWeek)
	}
	return nil
}
