package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school_equipment_portal/app"
	"school_equipment_portal/auth"
	"school_equipment_portal/db"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

type registerInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
	Role     string `json:"role" binding:"required,oneof=student staff admin"`
}

// POST /register
func (uc *UserController) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	u, err := uc.Repo.CreateUser(c.Request.Context(), in.Username, hash, in.Role)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, app.H{"error": "username already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// POST /token is the OAuth2 password grant: form-encoded username/password
// in, bearer token out.
func (uc *UserController) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "username and password are required"})
		return
	}

	u, err := uc.Repo.FindUserByUsername(c.Request.Context(), username)
	if err != nil || !auth.CheckPassword(password, u.PasswordHash) {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, app.H{"error": "incorrect username or password"})
		return
	}

	token, jti, err := uc.JWT.Issue(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if err := uc.Tokens.Save(c.Request.Context(), jti, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if err := uc.Repo.TouchUserLogin(c.Request.Context(), u.ID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		uc.Log.Warn("touch login failed", zap.Uint("userID", u.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, app.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// POST /logout revokes the presented token.
func (uc *UserController) Logout(c *gin.Context) {
	v, ok := c.Get(app.CtxTokenJTI)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	jti, _ := v.(string)
	if err := uc.Tokens.Revoke(c.Request.Context(), jti); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /users/me
func (uc *UserController) Me(c *gin.Context) {
	uid, ok := app.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /users?q=&page=&size= (admin)
func (uc *UserController) ListUsers(c *gin.Context) {
	q := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.Repo.ListUsers(c.Request.Context(), q, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": res.Total, "users": res.Users})
}

// GET /users/:id/requests (admin)
func (uc *UserController) UserRequests(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid user id"})
		return
	}
	if _, err := uc.Repo.FindUserByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "user not found"})
		return
	}
	reqs, err := uc.Repo.ListRequestsByUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// DELETE /users/:id (admin)
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid user id"})
		return
	}

	// Deleting yourself would lock the admin out mid-session.
	if uid, ok := app.CurrentUserID(c); ok && uid == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete yourself"})
		return
	}

	if err := uc.Repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	_ = uc.Tokens.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
