package usecases

import (
	"context"
	"log/slog"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// DeletePool is the usecase for §4.F.10.
type DeletePool struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Users       user_out.UserRepository
}

func (uc *DeletePool) Exec(ctx context.Context, poolID, actingUserID common.ID) error {
	pool, err := uc.Pools.GetByID(ctx, poolID)
	if err != nil || pool == nil {
		return common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex())
	}
	if pool.OwnerID != actingUserID {
		return common.NewErrForbidden("owner-only")
	}

	if err := uc.Picks.DeleteByPool(ctx, poolID); err != nil {
		return err
	}
	if err := uc.Memberships.DeleteByPool(ctx, poolID); err != nil {
		return err
	}
	if err := uc.Pools.Delete(ctx, poolID); err != nil {
		return err
	}
	if err := uc.Users.ClearDefaultPool(ctx, poolID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "pool deleted", "pool_id", poolID.Hex())
	return nil
}
