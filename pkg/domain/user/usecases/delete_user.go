package usecases

import (
	"context"
	"log/slog"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_entities "github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	pool_usecases "github.com/survivor-pool/survivor-pool/pkg/domain/pool/usecases"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// DeleteUser is the usecase for §4.D delete_user. Cascades: delete_pool for
// every pool the user owns, then remove remaining memberships/picks, then
// the user itself.
type DeleteUser struct {
	Users       out.UserRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	DeletePool  *pool_usecases.DeletePool
}

func (uc *DeleteUser) Exec(ctx context.Context, userID common.ID) error {
	user, err := uc.Users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return common.NewErrNotFound(common.UserResourceType, "id", userID.Hex())
	}

	memberships, err := uc.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, m := range memberships {
		if m.Role == pool_entities.RoleOwner {
			if err := uc.DeletePool.Exec(ctx, m.PoolID, userID); err != nil {
				return err
			}
		}
	}

	if err := uc.Picks.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := uc.Memberships.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := uc.Users.Delete(ctx, userID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deleted", "user_id", userID.Hex())
	return nil
}
