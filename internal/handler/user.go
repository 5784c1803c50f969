package handler

import (
	"net/http"
	"time"

	"github.com/finman-2025/finman-backend/internal/config"
	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the profile and avatar endpoints of the logged-in user.
type UserHandler struct {
	users  *service.UserService
	tmpDir string
}

func NewUserHandler(users *service.UserService, cfg *config.StorageConfig) *UserHandler {
	return &UserHandler{users: users, tmpDir: cfg.TmpDir}
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"user": toUserResp(user)})
}

type updateProfileReq struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Sex         *string `json:"sex"`
	DateOfBirth *string `json:"date_of_birth"`
	Address     *string `json:"address"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	in := service.UpdateProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Sex:         req.Sex,
		Address:     req.Address,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date_of_birth")
			return
		}
		in.DateOfBirth = &dob
	}

	updated, err := h.users.UpdateProfile(user.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"user": toUserResp(updated)})
}

func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.users.Delete(user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "account deleted"})
}

// UpdateAvatar replaces the user's avatar, removing the previous object.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "avatar file is required")
		return
	}
	img, err := stageUpload(c, file, h.tmpDir)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to receive avatar")
		return
	}

	url, err := h.users.UpdateAvatar(user.ID, *img)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"avatar": url})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.users.DeleteAvatar(user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "avatar removed"})
}
