package usecases

import (
	"context"
	"log/slog"
	"strings"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// CreatePoolCommand is the input to CreatePool (§4.F.1).
type CreatePoolCommand struct {
	OwnerID   common.ID
	Name      string
	SeasonID  common.ID
	StartWeek int
	Invitees  []common.ID
}

// CreatePoolResult is returned to the request surface.
type CreatePoolResult struct {
	Pool            *entities.Pool
	InvitedUserIDs  []common.ID
}

// CreatePool is the usecase for §4.F.1.
type CreatePool struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Seasons     season_out.SeasonRepository
	Users       user_out.UserRepository
}

func (uc *CreatePool) Exec(ctx context.Context, cmd CreatePoolCommand) (*CreatePoolResult, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, common.NewErrInvalidInput("name must not be empty")
	}
	if cmd.StartWeek < 1 || cmd.StartWeek > 6 {
		return nil, common.NewErrInvalidInput("start_week must be between 1 and 6")
	}

	owner, err := uc.Users.GetByID(ctx, cmd.OwnerID)
	if err != nil || owner == nil {
		return nil, common.NewErrNotFound(common.UserResourceType, "id", cmd.OwnerID.Hex())
	}

	season, err := uc.Seasons.GetByID(ctx, cmd.SeasonID)
	if err != nil || season == nil {
		return nil, common.NewErrNotFound(common.SeasonResourceType, "id", cmd.SeasonID.Hex())
	}

	seen := map[common.ID]bool{cmd.OwnerID: true}
	var invitees []common.ID
	for _, id := range cmd.Invitees {
		if seen[id] {
			continue
		}
		seen[id] = true

		u, err := uc.Users.GetByID(ctx, id)
		if err != nil || u == nil {
			return nil, common.NewErrNotFound(common.UserResourceType, "id", id.Hex())
		}
		invitees = append(invitees, id)
	}

	pool := entities.NewPool(name, cmd.OwnerID, cmd.SeasonID, cmd.StartWeek)
	if err := uc.Pools.Create(ctx, pool); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ownerMembership := entities.NewOwnerMembership(pool.ID, cmd.OwnerID, now)
	if err := uc.Memberships.Upsert(ctx, ownerMembership); err != nil {
		return nil, err
	}

	members := []*entities.Membership{ownerMembership}
	for _, id := range invitees {
		m := entities.NewInvitedMembership(pool.ID, id, now)
		if err := uc.Memberships.Upsert(ctx, m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	owner.DefaultPool = &pool.ID
	if err := uc.Users.Update(ctx, owner); err != nil {
		return nil, err
	}

	if err := RecalculatePoolScores(ctx, uc.Picks, uc.Memberships, season, pool.ID, pool.CurrentWeek, members); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "pool created", "pool_id", pool.ID.Hex(), "owner_id", cmd.OwnerID.Hex(), "invitees", len(invitees))

	return &CreatePoolResult{Pool: pool, InvitedUserIDs: invitees}, nil
}
