package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirp/chirp/middleware"
	"github.com/chirp/chirp/models"
	"github.com/chirp/chirp/store"
	"github.com/chirp/chirp/utils"
)

const birthDateLayout = "2006-01-02"

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

// AuthController handles registration, login and logout.
type AuthController struct {
	store    *store.Store
	verifier utils.CredentialVerifier
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(st *store.Store, verifier utils.CredentialVerifier) *AuthController {
	return &AuthController{store: st, verifier: verifier}
}

type registerForm struct {
	Nickname  string `form:"nickname" binding:"required,max=50"`
	Email     string `form:"email" binding:"required,email,max=120"`
	BirthDate string `form:"birth_date" binding:"required"`
	Password  string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterPage shows the registration form.
func (a *AuthController) RegisterPage(ctx *gin.Context) {
	data := pageData(ctx, "Register")
	data["form"] = registerForm{}
	utils.RenderPage(ctx, http.StatusOK, "register.html", data)
}

// Register creates an account. Nothing is written unless every field is valid
// and both nickname and email are free.
func (a *AuthController) Register(ctx *gin.Context) {
	var form registerForm
	bindErr := ctx.ShouldBind(&form)
	form.Nickname = strings.TrimSpace(form.Nickname)
	form.Email = strings.TrimSpace(form.Email)
	form.BirthDate = strings.TrimSpace(form.BirthDate)

	rerender := func(status int, message string) {
		data := pageData(ctx, "Register")
		data["form"] = registerForm{Nickname: form.Nickname, Email: form.Email, BirthDate: form.BirthDate}
		utils.RenderPage(ctx, status, "register.html", data, utils.Flash{Severity: utils.SeverityDanger, Message: message})
	}

	if bindErr != nil || form.Nickname == "" || form.Email == "" {
		rerender(http.StatusBadRequest, "Please fill in every field with a valid value")
		return
	}
	if utils.HasMarkup(form.Nickname) {
		rerender(http.StatusBadRequest, "Nickname cannot contain HTML")
		return
	}
	if len(form.Password) > maxPasswordBytes {
		rerender(http.StatusBadRequest, fmt.Sprintf("Password cannot exceed %d bytes", maxPasswordBytes))
		return
	}
	birthDate, err := time.Parse(birthDateLayout, form.BirthDate)
	if err != nil {
		rerender(http.StatusBadRequest, "Birth date must be in YYYY-MM-DD format")
		return
	}

	hash, err := a.verifier.Hash(form.Password)
	if err != nil {
		utils.ServerError(ctx, err, "hash password")
		return
	}

	user := models.User{
		Nickname:  form.Nickname,
		Email:     form.Email,
		BirthDate: birthDate,
		Password:  hash,
	}
	err = a.store.WithTransaction(ctx.Request.Context(), func(tx *store.Store) error {
		if err := tx.CheckAvailable(ctx.Request.Context(), user.Nickname, user.Email); err != nil {
			return err
		}
		return tx.CreateUser(ctx.Request.Context(), &user)
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNicknameTaken):
		rerender(http.StatusConflict, "Nickname is already taken")
		return
	case errors.Is(err, store.ErrEmailTaken):
		rerender(http.StatusConflict, "Email is already registered")
		return
	case errors.Is(err, store.ErrConflict):
		rerender(http.StatusConflict, "Nickname or email is already registered")
		return
	default:
		utils.ServerError(ctx, err, "register user")
		return
	}

	utils.Sugar.Infow("user registered", "user_id", user.ID)
	utils.Finish(ctx, utils.Succeeded("You have been successfully registered", "/"))
}

// LoginPage shows the login form.
func (a *AuthController) LoginPage(ctx *gin.Context) {
	utils.RenderPage(ctx, http.StatusOK, "login.html", pageData(ctx, "Log in"))
}

// Login verifies credentials and starts a session.
func (a *AuthController) Login(ctx *gin.Context) {
	var form loginForm
	bindErr := ctx.ShouldBind(&form)
	form.Email = strings.TrimSpace(form.Email)

	fail := func() {
		data := pageData(ctx, "Log in")
		data["email"] = form.Email
		utils.RenderPage(ctx, http.StatusOK, "login.html", data,
			utils.Flash{Severity: utils.SeverityDanger, Message: "Invalid email or password. Please try again."})
	}
	if bindErr != nil {
		fail()
		return
	}

	user, err := a.store.UserByEmail(ctx.Request.Context(), form.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail()
		return
	}
	if err != nil {
		utils.ServerError(ctx, err, "look up user by email")
		return
	}
	if !a.verifier.Verify(user.Password, form.Password) {
		fail()
		return
	}

	if err := middleware.StartSession(ctx, user.ID); err != nil {
		utils.ServerError(ctx, err, "start session")
		return
	}
	utils.Finish(ctx, utils.Succeeded("You have been successfully logged in", "/"))
}

// Logout revokes the current session.
func (a *AuthController) Logout(ctx *gin.Context) {
	if err := middleware.EndSession(ctx); err != nil {
		utils.Sugar.Warnw("session revocation failed", "error", err)
	}
	utils.Finish(ctx, utils.Succeeded("You have been logged out", middleware.LoginPath))
}
