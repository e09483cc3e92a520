package controllers

import (
	"net/http"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_usecases "github.com/survivor-pool/survivor-pool/pkg/domain/pool/usecases"
	user_usecases "github.com/survivor-pool/survivor-pool/pkg/domain/user/usecases"
)

// UserController serves the account endpoints of §6: signup, login,
// password lifecycle, email verification, and the account's own pool and
// invite views.
type UserController struct {
	CreateUser               *user_usecases.CreateUser
	LoginUser                *user_usecases.LoginUser
	RequestPasswordReset     *user_usecases.RequestPasswordReset
	CompletePasswordReset    *user_usecases.CompletePasswordReset
	VerifyUserEmail          *user_usecases.VerifyUserEmail
	UpdateDefaultPool        *user_usecases.UpdateDefaultPool
	UpdatePassword           *user_usecases.UpdatePassword
	DeleteUser               *user_usecases.DeleteUser
	ListUserPools            *user_usecases.ListUserPools
	SearchActiveUsers        *user_usecases.SearchActiveUsers
	GetPendingInvitesForUser *pool_usecases.GetPendingInvitesForUser
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	user, err := c.CreateUser.Exec(r.Context(), user_usecases.CreateUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, user)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	result, err := c.LoginUser.Exec(r.Context(), user_usecases.LoginUserCommand{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, loginResponse{Token: result.Token, User: result.User})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (c *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := c.RequestPasswordReset.Exec(r.Context(), req.Email); err != nil {
		WriteError(w, err)
		return
	}
	WriteNoContent(w)
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (c *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	err := c.CompletePasswordReset.Exec(r.Context(), user_usecases.CompletePasswordResetCommand{
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteNoContent(w)
}

func (c *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := pathVar(r, "token")

	err := c.VerifyUserEmail.Exec(r.Context(), token)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		w.WriteHeader(common.StatusCodeFor(err))
		_, _ = w.Write([]byte("<html><body><h1>Verification failed</h1></body></html>"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<html><body><h1>Email verified</h1></body></html>"))
}

func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	WriteOK(w, principal.User)
}

func (c *UserController) ListPools(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	userID, err := PathID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := RequireSameUser(principal, userID); err != nil {
		WriteError(w, err)
		return
	}

	pools, err := c.ListUserPools.Exec(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, pools)
}

func (c *UserController) ListInvites(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	userID, err := PathID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := RequireSameUser(principal, userID); err != nil {
		WriteError(w, err)
		return
	}

	invites, err := c.GetPendingInvitesForUser.Exec(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, invites)
}

func (c *UserController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 25)

	var poolID *common.ID
	if id, ok, err := QueryID(r, "pool_id"); err != nil {
		WriteError(w, err)
		return
	} else if ok {
		poolID = &id
	}

	results, err := c.SearchActiveUsers.Exec(r.Context(), q, poolID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, results)
}

type updateDefaultPoolRequest struct {
	PoolID *string `json:"pool_id"`
}

func (c *UserController) SetDefaultPool(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	userID, err := PathID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := RequireSameUser(principal, userID); err != nil {
		WriteError(w, err)
		return
	}

	var req updateDefaultPoolRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var poolID *common.ID
	if req.PoolID != nil {
		id, err := common.IDFromHex(*req.PoolID)
		if err != nil {
			WriteError(w, common.NewErrBadRequest("invalid pool_id"))
			return
		}
		poolID = &id
	}

	if err := c.UpdateDefaultPool.Exec(r.Context(), userID, poolID); err != nil {
		WriteError(w, err)
		return
	}
	WriteOK(w, map[string]string{"default_pool": pointerHex(poolID)})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	userID, err := PathID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := RequireSameUser(principal, userID); err != nil {
		WriteError(w, err)
		return
	}

	var req updatePasswordRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	err = c.UpdatePassword.Exec(r.Context(), user_usecases.UpdatePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteNoContent(w)
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	principal := RequirePrincipal(r)
	userID, err := PathID(r, "user_id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := RequireSameUser(principal, userID); err != nil {
		WriteError(w, err)
		return
	}

	if err := c.DeleteUser.Exec(r.Context(), userID); err != nil {
		WriteError(w, err)
		return
	}
	WriteNoContent(w)
}

func pointerHex(id *common.ID) string {
	if id == nil {
		return ""
	}
	return id.Hex()
}
