package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirp/chirp/models"
	"github.com/chirp/chirp/store"
	"github.com/chirp/chirp/utils"
)

// UserController serves public profiles.
type UserController struct {
	store    *store.Store
	pageSize int
}

// NewUserController creates a new UserController instance.
func NewUserController(st *store.Store, pageSize int) *UserController {
	return &UserController{store: st, pageSize: pageSize}
}

// publicUser is the JSON shape of a profile.
type publicUser struct {
	ID        uint   `json:"id"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

func toPublicUser(u *models.User) publicUser {
	return publicUser{
		ID:        u.ID,
		Nickname:  u.Nickname,
		Email:     u.Email,
		BirthDate: u.BirthDate.Format(birthDateLayout),
	}
}

// Profile renders a user's page with their posts, newest first.
func (u *UserController) Profile(ctx *gin.Context) {
	userID, ok := parseID(ctx.Param("user_id"))
	if !ok {
		utils.NotFound(ctx, "User not found")
		return
	}
	user, err := u.store.UserByID(ctx.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(ctx, "User not found")
		return
	}
	if err != nil {
		utils.ServerError(ctx, err, "load user")
		return
	}

	viewer, _ := getUserID(ctx)
	page := parsePage(ctx.Query("page"))
	items, pg, err := u.store.UserFeed(ctx.Request.Context(), user.ID, viewer, page, u.pageSize)
	if err != nil {
		utils.ServerError(ctx, err, "load user posts")
		return
	}

	data := pageData(ctx, user.Nickname)
	data["user"] = user
	data["items"] = items
	data["pagination"] = pg
	data["next"] = fmt.Sprintf("/user/%d?page=%d", user.ID, pg.Page)
	utils.RenderPage(ctx, http.StatusOK, "user.html", data)
}

// APIGetUser returns public user info by ID.
func (u *UserController) APIGetUser(ctx *gin.Context) {
	userID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	user, err := u.store.UserByID(ctx.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorw("load user failed", "user_id", userID, "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to get user")
		return
	}
	utils.Success(ctx, toPublicUser(user))
}

// APIUserPosts returns one page of a user's posts.
func (u *UserController) APIUserPosts(ctx *gin.Context) {
	userID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	if _, err := u.store.UserByID(ctx.Request.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Sugar.Errorw("load user failed", "user_id", userID, "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to get user")
		return
	}
	viewer, _ := getUserID(ctx)
	items, pg, err := u.store.UserFeed(ctx.Request.Context(), userID, viewer, parsePage(ctx.Query("page")), u.pageSize)
	if err != nil {
		utils.Sugar.Errorw("list user posts failed", "user_id", userID, "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to list user posts")
		return
	}
	utils.Success(ctx, gin.H{
		"items":      items,
		"pagination": pg,
	})
}
