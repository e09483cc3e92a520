package routing

import (
	"net/http"
	"time"

	"github.com/golobby/container/v3"
	"github.com/gorilla/mux"

	"github.com/survivor-pool/survivor-pool/cmd/rest-api/controllers"
	"github.com/survivor-pool/survivor-pool/cmd/rest-api/middlewares"
	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/authn"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"

	"go.mongodb.org/mongo-driver/mongo"
)

// NewRouter wires every endpoint of §6 against its controller and middleware.
func NewRouter(c container.Container) http.Handler {
	var config common.Config
	mustResolve(c, &config)

	var client *mongo.Client
	mustResolve(c, &client)

	var gate *authn.Gate
	mustResolve(c, &gate)

	var pools pool_out.PoolRepository
	var seasons season_out.SeasonRepository
	mustResolve(c, &pools)
	mustResolve(c, &seasons)

	health := controllers.NewHealthController(client)

	users := &controllers.UserController{}
	mustResolve(c, &users.CreateUser)
	mustResolve(c, &users.LoginUser)
	mustResolve(c, &users.RequestPasswordReset)
	mustResolve(c, &users.CompletePasswordReset)
	mustResolve(c, &users.VerifyUserEmail)
	mustResolve(c, &users.UpdateDefaultPool)
	mustResolve(c, &users.UpdatePassword)
	mustResolve(c, &users.DeleteUser)
	mustResolve(c, &users.ListUserPools)
	mustResolve(c, &users.SearchActiveUsers)
	mustResolve(c, &users.GetPendingInvitesForUser)

	poolsCtl := &controllers.PoolController{Pools: pools, Seasons: seasons}
	mustResolve(c, &poolsCtl.CreatePool)
	mustResolve(c, &poolsCtl.DeletePool)
	mustResolve(c, &poolsCtl.CreatePick)
	mustResolve(c, &poolsCtl.GetAvailableContestants)
	mustResolve(c, &poolsCtl.GetContestantDetail)
	mustResolve(c, &poolsCtl.ComputeAdvanceStatus)
	mustResolve(c, &poolsCtl.AdvancePoolWeek)
	mustResolve(c, &poolsCtl.GetPoolLeaderboard)
	mustResolve(c, &poolsCtl.ListPoolMemberships)
	mustResolve(c, &poolsCtl.InviteUserToPool)
	mustResolve(c, &poolsCtl.RespondToInvite)

	auth := middlewares.NewAuthMiddleware(gate)
	cors := middlewares.NewCORSMiddleware(config.CORS.AllowOriginRegex)
	loginLimiter := middlewares.NewRateLimitMiddlewareWithConfig(10, time.Minute)

	r := mux.NewRouter()
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.RecoveryMiddleware)
	r.Use(cors.Handler)

	r.HandleFunc("/", health.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	r.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	r.Handle("/users/login", loginLimiter.Handler(http.HandlerFunc(users.Login))).Methods(http.MethodPost)
	r.HandleFunc("/users/forgot_password", users.ForgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/users/reset_password", users.ResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/users/verify/{token}", users.VerifyEmail).Methods(http.MethodGet)
	r.HandleFunc("/users/me", auth.RequireAuth(users.Me)).Methods(http.MethodGet)
	r.HandleFunc("/users/search", auth.RequireAuth(users.Search)).Methods(http.MethodGet)
	r.HandleFunc("/users/{user_id}/pools", auth.RequireAuth(users.ListPools)).Methods(http.MethodGet)
	r.HandleFunc("/users/{user_id}/invites", auth.RequireAuth(users.ListInvites)).Methods(http.MethodGet)
	r.HandleFunc("/users/{user_id}/default_pool", auth.RequireAuth(users.SetDefaultPool)).Methods(http.MethodPatch)
	r.HandleFunc("/users/{user_id}/password", auth.RequireAuth(users.ChangePassword)).Methods(http.MethodPatch)
	r.HandleFunc("/users/{user_id}", auth.RequireAuth(users.Delete)).Methods(http.MethodDelete)

	r.HandleFunc("/pools", auth.RequireAuth(poolsCtl.Create)).Methods(http.MethodPost)
	r.HandleFunc("/pools/{pool_id}", auth.RequireAuth(poolsCtl.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/pools/{pool_id}/available_contestants", auth.RequireAuth(poolsCtl.AvailableContestants)).Methods(http.MethodGet)
	r.HandleFunc("/pools/{pool_id}/contestants/{contestant_id}", auth.RequireAuth(poolsCtl.ContestantDetail)).Methods(http.MethodGet)
	r.HandleFunc("/pools/{pool_id}/advance-status", auth.RequireAuth(poolsCtl.AdvanceStatus)).Methods(http.MethodGet)
	r.HandleFunc("/pools/{pool_id}/advance-week", auth.RequireAuth(poolsCtl.AdvanceWeek)).Methods(http.MethodPost)
	r.HandleFunc("/pools/{pool_id}/leaderboard", auth.RequireAuth(poolsCtl.Leaderboard)).Methods(http.MethodGet)
	r.HandleFunc("/pools/{pool_id}/memberships", auth.RequireAuth(poolsCtl.Memberships)).Methods(http.MethodGet)
	r.HandleFunc("/pools/{pool_id}/invites", auth.RequireAuth(poolsCtl.Invite)).Methods(http.MethodPost)
	r.HandleFunc("/pools/{pool_id}/invites/respond", auth.RequireAuth(poolsCtl.RespondInvite)).Methods(http.MethodPost)
	r.HandleFunc("/pools/{pool_id}/picks", auth.RequireAuth(poolsCtl.Pick)).Methods(http.MethodPost)

	return r
}

// mustResolve panics on a container wiring failure: every dependency listed
// here is registered in ioc.ContainerBuilder, so a miss means the binary was
// built with an incomplete container rather than a runtime condition.
func mustResolve(c container.Container, receiver interface{}) {
	if err := c.Resolve(receiver); err != nil {
		panic(err)
	}
}
