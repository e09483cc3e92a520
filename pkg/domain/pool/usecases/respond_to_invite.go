package usecases

import (
	"context"
	"log/slog"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
)

type InviteAction string

const (
	InviteAccept  InviteAction = "accept"
	InviteDecline InviteAction = "decline"
)

// RespondToInvite is the usecase for §4.G respond_to_invite.
type RespondToInvite struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Seasons     season_out.SeasonRepository
	Competitive *MaybeMarkPoolCompetitive
}

func (uc *RespondToInvite) Exec(ctx context.Context, poolID, userID common.ID, action InviteAction) (*entities.Membership, error) {
	pool, err := uc.Pools.GetByID(ctx, poolID)
	if err != nil || pool == nil {
		return nil, common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex())
	}

	now := time.Now().UTC()
	var result *entities.Membership

	ok, err := uc.Memberships.CompareAndSwapInvitedStatus(ctx, poolID, userID, func(m *entities.Membership) {
		if action == InviteAccept {
			m.Accept(now)
		} else {
			m.Decline()
		}
		result = m
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewErrConflict("invite_already_handled")
	}

	if action == InviteAccept {
		season, err := uc.Seasons.GetByID(ctx, pool.SeasonID)
		if err != nil || season == nil {
			return nil, common.NewErrInternal("season unavailable for pool")
		}

		members, err := uc.Memberships.ListByPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		if err := RecalculatePoolScores(ctx, uc.Picks, uc.Memberships, season, poolID, pool.CurrentWeek, members); err != nil {
			return nil, err
		}

		if err := uc.Competitive.Exec(ctx, pool); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "invite responded", "pool_id", poolID.Hex(), "user_id", userID.Hex(), "action", action)

	return result, nil
}
