package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/middleware"
	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
	"github.com/mzhuravlev/shopcourse/internal/store"
	"github.com/mzhuravlev/shopcourse/internal/types"
)

type UserHandler struct {
	users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

type registerBody struct {
	Username  *string          `json:"username"`
	Name      *string          `json:"name"`
	Birthdate *types.Birthdate `json:"birthdate"`
	Role      *types.UserRole  `json:"role"`
	Password  *string          `json:"password"`
}

// Register answers 200 with the public user view; duplicate usernames and
// rejected passwords are 400.
func (h *UserHandler) Register(c *gin.Context) {
	var body registerBody
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		RespondError(c, apierr.Validation("invalid user payload"))
		return
	}
	if body.Username == nil || body.Name == nil || body.Birthdate == nil || body.Password == nil {
		RespondError(c, apierr.Validation("username, name, birthdate and password are required"))
		return
	}
	info := types.UserInfo{
		Username:  *body.Username,
		Name:      *body.Name,
		Birthdate: *body.Birthdate,
		Password:  *body.Password,
	}
	if body.Role != nil {
		if !body.Role.Valid() {
			RespondError(c, apierr.Validation("role must be 'user' or 'admin'"))
			return
		}
		info.Role = *body.Role
	}
	user, err := h.users.Register(info)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user.View())
}

// Get looks up a user by exactly one of id or username. Admins may fetch
// anyone; everyone else only their own record. A non-admin hitting a
// different existing user is answered 500, not 403. Clients depend on that
// status, so changing it here would break them (see DESIGN.md).
func (h *UserHandler) Get(c *gin.Context) {
	idParam := c.Query("id")
	usernameParam := c.Query("username")
	if (idParam == "") == (usernameParam == "") {
		RespondError(c, apierr.BadRequest("exactly one of id or username must be provided"))
		return
	}

	var target types.User
	var found bool
	if idParam != "" {
		uid, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			RespondError(c, apierr.Validation("id must be an integer"))
			return
		}
		target, found = h.users.GetByID(uid)
	} else {
		target, found = h.users.GetByUsername(usernameParam)
	}
	if !found {
		RespondError(c, apierr.NotFound("user not found"))
		return
	}

	author, ok := middleware.Author(c)
	if !ok {
		RespondError(c, apierr.Unauthorized("missing credentials"))
		return
	}
	if author.Info.Role != types.RoleAdmin && author.UID != target.UID {
		RespondError(c, apierr.Internal("cannot access other users"))
		return
	}
	RespondOK(c, target.View())
}

// Promote grants the admin role. The admin gate runs in middleware before
// this handler.
func (h *UserHandler) Promote(c *gin.Context) {
	idParam := c.Query("id")
	if idParam == "" {
		RespondError(c, apierr.Validation("Parameter 'id' is required"))
		return
	}
	uid, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		RespondError(c, apierr.Validation("id must be an integer"))
		return
	}
	if err := h.users.GrantAdmin(uid); err != nil {
		RespondError(c, err)
		return
	}
	promoted, _ := h.users.GetByID(uid)
	RespondOK(c, promoted.View())
}
