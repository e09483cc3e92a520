package usecases

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// UpdateDefaultPool is the usecase for §4.D update_default_pool. A nil
// poolID clears the default; a non-nil poolID requires the user already
// have a membership (any status) in that pool.
type UpdateDefaultPool struct {
	Users       out.UserRepository
	Memberships pool_out.MembershipRepository
}

func (uc *UpdateDefaultPool) Exec(ctx context.Context, userID common.ID, poolID *common.ID) error {
	user, err := uc.Users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return common.NewErrNotFound(common.UserResourceType, "id", userID.Hex())
	}

	if poolID == nil {
		user.DefaultPool = nil
		user.Touch()
		return uc.Users.Update(ctx, user)
	}

	membership, err := uc.Memberships.GetByPoolAndUser(ctx, *poolID, userID)
	if err != nil || membership == nil {
		return common.NewErrInvalidInput("user has no membership in that pool")
	}

	user.DefaultPool = poolID
	user.Touch()
	return uc.Users.Update(ctx, user)
}
