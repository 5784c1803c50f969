package handler

import (
	"net/http"

	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TipHandler serves the editorial financial tips. Reads are open to any
// logged-in user; writes are meant for content management.
type TipHandler struct {
	tips *service.TipService
}

func NewTipHandler(tips *service.TipService) *TipHandler {
	return &TipHandler{tips: tips}
}

func (h *TipHandler) List(c *gin.Context) {
	tips, err := h.tips.List(c.Query("type"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"tips": tips})
}

func (h *TipHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tip, err := h.tips.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"tip": tip})
}

type tipReq struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Author      string `json:"author"`
	AuthorImage string `json:"author_image"`
	Type        string `json:"type"`
}

func (h *TipHandler) Create(c *gin.Context) {
	var req tipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	tip, err := h.tips.Create(service.TipInput{
		Title:       req.Title,
		Content:     req.Content,
		Author:      req.Author,
		AuthorImage: req.AuthorImage,
		Type:        req.Type,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"tip": tip})
}

func (h *TipHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req tipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	tip, err := h.tips.Update(id, service.TipInput{
		Title:       req.Title,
		Content:     req.Content,
		Author:      req.Author,
		AuthorImage: req.AuthorImage,
		Type:        req.Type,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"tip": tip})
}

func (h *TipHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.tips.Delete(id); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "tip deleted"})
}
