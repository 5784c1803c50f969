package handler

import (
	"net/http"
	"strconv"

	"github.com/finman-2025/finman-backend/internal/config"
	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler manages the user's expense and income categories.
// Create and Update accept multipart forms so an icon image can ride along.
type CategoryHandler struct {
	categories *service.CategoryService
	tmpDir     string
}

func NewCategoryHandler(categories *service.CategoryService, cfg *config.StorageConfig) *CategoryHandler {
	return &CategoryHandler{categories: categories, tmpDir: cfg.TmpDir}
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cats, err := h.categories.List(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"categories": toCategoryResps(cats)})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.categories.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	if cat.UserID != user.ID {
		fail(c, service.ErrCategoryNotFound)
		return
	}
	util.Success(c, util.Response{"category": toCategoryResp(*cat)})
}

// formLimit reads an optional integer limit from a multipart form.
func formLimit(c *gin.Context) (*int64, bool) {
	raw := c.PostForm("limit")
	if raw == "" {
		return nil, true
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
		return nil, false
	}
	return &limit, true
}

// formImage stages an optional image part. A missing part is not an error.
func (h *CategoryHandler) formImage(c *gin.Context) (*service.ImageUpload, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, true
	}
	img, err := stageUpload(c, file, h.tmpDir)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to receive image")
		return nil, false
	}
	return img, true
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	name := c.PostForm("name")
	catType := c.PostForm("type")
	if name == "" || catType == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name and type are required")
		return
	}
	limit, ok := formLimit(c)
	if !ok {
		return
	}
	img, ok := h.formImage(c)
	if !ok {
		return
	}

	cat, err := h.categories.Create(user.ID, service.CreateCategoryInput{
		Name:  name,
		Type:  catType,
		Limit: limit,
		Image: img,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"category": toCategoryResp(*cat)})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	cat, err := h.categories.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	if cat.UserID != user.ID {
		fail(c, service.ErrCategoryNotFound)
		return
	}

	var in service.UpdateCategoryInput
	if name := c.PostForm("name"); name != "" {
		in.Name = &name
	}
	limit, ok := formLimit(c)
	if !ok {
		return
	}
	in.Limit = limit
	img, ok := h.formImage(c)
	if !ok {
		return
	}
	in.Image = img

	updated, err := h.categories.Update(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"category": toCategoryResp(*updated)})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	cat, err := h.categories.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	if cat.UserID != user.ID {
		fail(c, service.ErrCategoryNotFound)
		return
	}

	if err := h.categories.Delete(id); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "category deleted"})
}
