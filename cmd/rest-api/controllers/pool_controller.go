package controllers

import (
	"net/http"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	pool_usecases "github.com/survivor-pool/survivor-pool/pkg/domain/pool/usecases"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
)

// PoolController serves the pool lifecycle, pick, invite, and leaderboard
// endpoints of §6.
type PoolController struct {
	Pools   pool_out.PoolRepository
	Seasons season_out.SeasonRepository

	CreatePool              *pool_usecases.CreatePool
	DeletePool              *pool_usecases.DeletePool
	CreatePick              *pool_usecases.CreatePick
	GetAvailableContestants *pool_usecases.GetAvailableContestants
	GetContestantDetail     *pool_usecases.GetContestantDetail
	ComputeAdvanceStatus    *pool_usecases.ComputeAdvanceStatus
	AdvancePoolWeek         *pool_usecases.AdvancePoolWeek
	GetPoolLeaderboard      *pool_usecases.GetPoolLeaderboard
	ListPoolMemberships     *pool_usecases.ListPoolMemberships
	InviteUserToPool        *pool_usecases.InviteUserToPool
	RespondToInvite         *pool_usecases.RespondToInvite
}

type createPoolRequest struct {
	Name      string   `json:"name"`
	SeasonID  string   `json:"season_id"`
	StartWeek int      `json:"start_week"`
	Invitees  []string `json:"invitees"`
}

func (c *PoolController) Create(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)

	var req createPoolRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	seasonID, err := common.IDFromHex(req.SeasonID)
	if err != nil {
		WriteError(w, common.NewErrBadRequest("invalid season_id"))
		return
	}

	invitees := make([]common.ID, 0, len(req.Invitees))
	for _, raw := range req.Invitees {
		id, err := common.IDFromHex(raw)
		if err != nil {
			WriteError(w, common.NewErrBadRequest("invalid invitee id"))
			return
		}
		invitees = append(invitees, id)
	}

	result, err := c.CreatePool.Exec(r.Context(), pool_usecases.CreatePoolCommand{
		OwnerID:   principal.ID,
		Name:      req.Name,
		SeasonID:  seasonID,
		StartWeek: req.StartWeek,
		Invitees:  invitees,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteCreated(w, result)
}

func (c *PoolController) Delete(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.DeletePool.Exec(r.Context(), poolID, principal.ID); err != nil {
		WriteError(w, err)
		return
	}
	WriteNoContent(w)
}

func (c *PoolController) AvailableContestants(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	userID, ok, err := QueryID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if !ok || RequireSameUser(principal, userID) != nil {
		WriteError(w, common.NewErrForbidden("same-user required"))
		return
	}

	view, err := c.GetAvailableContestants.Exec(r.Context(), poolID, userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, view)
}

func (c *PoolController) ContestantDetail(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	contestantID, err := PathID(r, "contestant_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	userID, ok, err := QueryID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if !ok || RequireSameUser(principal, userID) != nil {
		WriteError(w, common.NewErrForbidden("same-user required"))
		return
	}

	view, err := c.GetContestantDetail.Exec(r.Context(), poolID, userID, contestantID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, view)
}

func (c *PoolController) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	userID, ok, err := QueryID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if !ok || RequireSameUser(principal, userID) != nil {
		WriteError(w, common.NewErrForbidden("same-user required"))
		return
	}

	pool, err := c.Pools.GetByID(r.Context(), poolID)
	if err != nil || pool == nil {
		WriteError(w, common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex()))
		return
	}
	if pool.OwnerID != userID {
		WriteError(w, common.NewErrForbidden("owner-only"))
		return
	}

	season, err := c.Seasons.GetByID(r.Context(), pool.SeasonID)
	if err != nil || season == nil {
		WriteError(w, common.NewErrInternal("season unavailable for pool"))
		return
	}

	status, err := c.ComputeAdvanceStatus.Exec(r.Context(), pool, season)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, status)
}

func (c *PoolController) AdvanceWeek(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := c.AdvancePoolWeek.Exec(r.Context(), poolID, principal.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, result)
}

func (c *PoolController) Leaderboard(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	userID, ok, err := QueryID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if !ok || RequireSameUser(principal, userID) != nil {
		WriteError(w, common.NewErrForbidden("same-user required"))
		return
	}

	entries, err := c.GetPoolLeaderboard.Exec(r.Context(), poolID, userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, entries)
}

func (c *PoolController) Memberships(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	ownerID, ok, err := QueryID(r, "owner_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if !ok || RequireSameUser(principal, ownerID) != nil {
		WriteError(w, common.NewErrForbidden("same-user required"))
		return
	}

	rows, err := c.ListPoolMemberships.Exec(r.Context(), poolID, ownerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, rows)
}

type inviteRequest struct {
	UserID string `json:"user_id"`
}

func (c *PoolController) Invite(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req inviteRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	invitedID, err := common.IDFromHex(req.UserID)
	if err != nil {
		WriteError(w, common.NewErrBadRequest("invalid user_id"))
		return
	}

	membership, err := c.InviteUserToPool.Exec(r.Context(), poolID, principal.ID, invitedID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, membership)
}

type respondToInviteRequest struct {
	Action string `json:"action"`
}

func (c *PoolController) RespondInvite(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req respondToInviteRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var action pool_usecases.InviteAction
	switch req.Action {
	case string(pool_usecases.InviteAccept):
		action = pool_usecases.InviteAccept
	case string(pool_usecases.InviteDecline):
		action = pool_usecases.InviteDecline
	default:
		WriteError(w, common.NewErrBadRequest("action must be accept or decline"))
		return
	}

	membership, err := c.RespondToInvite.Exec(r.Context(), poolID, principal.ID, action)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, membership)
}

type createPickRequest struct {
	ContestantID string `json:"contestant_id"`
}

func (c *PoolController) Pick(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	poolID, err := PathID(r, "pool_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req createPickRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	contestantID, err := common.IDFromHex(req.ContestantID)
	if err != nil {
		WriteError(w, common.NewErrBadRequest("invalid contestant_id"))
		return
	}

	pick, err := c.CreatePick.Exec(r.Context(), pool_usecases.CreatePickCommand{
		PoolID:       poolID,
		UserID:       principal.ID,
		ContestantID: contestantID,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteCreated(w, pick)
}
