package handler

import (
	"net/http"

	"github.com/finman-2025/finman-backend/internal/config"
	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler accepts a receipt photo and returns the recognized fields
// so the client can prefill an expense form.
type ReceiptHandler struct {
	receipts *service.ReceiptService
	tmpDir   string
}

func NewReceiptHandler(receipts *service.ReceiptService, cfg *config.StorageConfig) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, tmpDir: cfg.TmpDir}
}

func (h *ReceiptHandler) Scan(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "image file is required")
		return
	}
	img, err := stageUpload(c, file, h.tmpDir)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to receive image")
		return
	}

	data, err := h.receipts.Process(c.Request.Context(), img.LocalPath)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"receipt": data})
}
