package usecases

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_entities "github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
	"github.com/survivor-pool/survivor-pool/pkg/domain/season/services"
)

// ContestantDetailView is the response of get_contestant_detail (§4.F.8).
type ContestantDetailView struct {
	Contestant        season_entities.Contestant
	EliminatedWeek    *int
	AlreadyPickedWeek *int
	IsAvailable       bool
	TribeName         string
	TribeColor        string
	Advantages        []season_entities.Advantage
}

// GetContestantDetail is the usecase for §4.F.8.
type GetContestantDetail struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Seasons     season_out.SeasonRepository
}

func (uc *GetContestantDetail) Exec(ctx context.Context, poolID, userID, contestantID common.ID) (*ContestantDetailView, error) {
	pool, err := uc.Pools.GetByID(ctx, poolID)
	if err != nil || pool == nil {
		return nil, common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex())
	}

	m, err := uc.Memberships.GetByPoolAndUser(ctx, poolID, userID)
	if err != nil || m == nil || !m.IsActive() {
		return nil, common.NewErrForbidden("not_active_member")
	}

	season, err := uc.Seasons.GetByID(ctx, pool.SeasonID)
	if err != nil || season == nil {
		return nil, common.NewErrInternal("season unavailable for pool")
	}

	contestant, ok := season.Contestant(contestantID)
	if !ok {
		return nil, common.NewErrNotFound(common.PickResourceType, "contestant_id", contestantID.Hex())
	}

	view := &ContestantDetailView{Contestant: contestant}

	if week, ok := season.EliminationWeek(contestantID); ok && week < pool.CurrentWeek {
		view.EliminatedWeek = &week
	}

	priorPicks, err := uc.Picks.ListByPoolUser(ctx, poolID, userID)
	if err != nil {
		return nil, err
	}
	var alreadyPicked bool
	for _, p := range priorPicks {
		if p.ContestantID == contestantID {
			alreadyPicked = true
			week := p.Week
			view.AlreadyPickedWeek = &week
			break
		}
	}

	currentPick, err := uc.Picks.GetByPoolUserWeek(ctx, poolID, userID, pool.CurrentWeek)
	if err != nil {
		return nil, err
	}
	currentPicked := currentPick != nil

	view.IsAvailable = !currentPicked && !alreadyPicked && view.EliminatedWeek == nil && m.Status == entities.StatusActive

	view.TribeName, view.TribeColor = services.ResolveTribe(season, contestantID, pool.CurrentWeek)
	view.Advantages = services.VisibleAdvantages(season, contestantID, pool.CurrentWeek)

	return view, nil
}
