package usecases

import (
	"context"
	"fmt"
	"log/slog"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
)

// CreatePickCommand is the input to CreatePick (§4.F.3).
type CreatePickCommand struct {
	PoolID       common.ID
	UserID       common.ID
	ContestantID common.ID
}

// CreatePick is the usecase for §4.F.3. It does NOT recompute scores:
// score is a function of current_week and prior-week picks only.
type CreatePick struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Seasons     season_out.SeasonRepository
}

func (uc *CreatePick) Exec(ctx context.Context, cmd CreatePickCommand) (*entities.Pick, error) {
	pool, err := uc.Pools.GetByID(ctx, cmd.PoolID)
	if err != nil || pool == nil {
		return nil, common.NewErrNotFound(common.PoolResourceType, "id", cmd.PoolID.Hex())
	}

	membership, err := uc.Memberships.GetByPoolAndUser(ctx, cmd.PoolID, cmd.UserID)
	if err != nil || membership == nil || !membership.IsActive() {
		return nil, common.NewErrForbidden("not_active_member")
	}

	season, err := uc.Seasons.GetByID(ctx, pool.SeasonID)
	if err != nil || season == nil {
		return nil, common.NewErrInternal("season unavailable for pool")
	}

	week := pool.CurrentWeek

	existing, err := uc.Picks.GetByPoolUserWeek(ctx, cmd.PoolID, cmd.UserID, week)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewErrBadRequest("pick_already_locked")
	}

	contestant, ok := season.Contestant(cmd.ContestantID)
	if !ok {
		return nil, common.NewErrNotFound(common.PickResourceType, "contestant_id", cmd.ContestantID.Hex())
	}

	priorPicks, err := uc.Picks.ListByPoolUser(ctx, cmd.PoolID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	for _, p := range priorPicks {
		if p.ContestantID == contestant.ID {
			return nil, common.NewErrBadRequest(fmt.Sprintf("contestant_already_picked in week %d", p.Week))
		}
	}

	if eliminatedWeek, ok := season.EliminationWeek(contestant.ID); ok && eliminatedWeek < week {
		return nil, common.NewErrBadRequest("contestant_already_eliminated")
	}

	pick := entities.NewPick(cmd.PoolID, cmd.UserID, contestant.ID, week)
	if err := uc.Picks.Create(ctx, pick); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "pick created", "pool_id", cmd.PoolID.Hex(), "user_id", cmd.UserID.Hex(), "week", week)

	return pick, nil
}
