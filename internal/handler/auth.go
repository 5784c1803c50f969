package handler

import (
	"net/http"
	"strings"

	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login and the token lifecycle.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// ---------- register ----------

type registerReq struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"max=64"`
	Email           string `json:"email" binding:"max=128"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "passwords do not match")
		return
	}

	user, err := h.auth.Register(req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "registered",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
		},
	})
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	user, pair, err := h.auth.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
		},
	})
}

// ---------- refresh ----------

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	pair, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// ---------- logout ----------

func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.auth.Logout(user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "logged out"})
}

// ---------- change password ----------

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	if err := h.auth.ChangePassword(user.ID, req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "password changed, please log in again"})
}
