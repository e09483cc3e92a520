package usecases

import (
	"context"
	"log/slog"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// InviteUserToPool is the usecase for §4.G invite_user_to_pool.
type InviteUserToPool struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Users       user_out.UserRepository
}

func (uc *InviteUserToPool) Exec(ctx context.Context, poolID, actingOwnerID, invitedUserID common.ID) (*entities.Membership, error) {
	pool, err := uc.Pools.GetByID(ctx, poolID)
	if err != nil || pool == nil {
		return nil, common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex())
	}
	if pool.OwnerID != actingOwnerID {
		return nil, common.NewErrForbidden("owner-only")
	}
	if invitedUserID == actingOwnerID {
		return nil, common.NewErrInvalidInput("cannot invite the pool owner")
	}

	invited, err := uc.Users.GetByID(ctx, invitedUserID)
	if err != nil || invited == nil {
		return nil, common.NewErrNotFound(common.UserResourceType, "id", invitedUserID.Hex())
	}
	if string(invited.AccountStatus) != "active" {
		return nil, common.NewErrForbidden("invited account is not active")
	}

	existing, err := uc.Memberships.GetByPoolAndUser(ctx, poolID, invitedUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == entities.StatusActive {
		return nil, common.NewErrConflict("user is already an active member")
	}

	now := time.Now().UTC()
	var membership *entities.Membership
	if existing != nil {
		existing.Reinvite(now)
		membership = existing
	} else {
		membership = entities.NewInvitedMembership(poolID, invitedUserID, now)
	}

	if err := uc.Memberships.Upsert(ctx, membership); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user invited to pool", "pool_id", poolID.Hex(), "invited_user_id", invitedUserID.Hex())

	return membership, nil
}
