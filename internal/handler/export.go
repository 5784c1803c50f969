package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ExportHandler builds expense exports and serves the stored files back.
type ExportHandler struct {
	exports *service.ExportService
}

func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type fileResp struct {
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func toFileResp(f models.ExportedFile) fileResp {
	return fileResp{
		FileName:  f.FileName,
		FileType:  f.FileType,
		URL:       f.URL,
		CreatedAt: f.CreatedAt,
	}
}

type exportReq struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Format    string `json:"format" binding:"required"`
}

// Create builds a csv or xlsx export of the user's expenses over an
// inclusive date range and stores it.
func (h *ExportHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid startDate")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid endDate")
		return
	}
	if end.Before(start) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "endDate before startDate")
		return
	}

	file, err := h.exports.ExportExpenses(user.ID, start, end, req.Format)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"file": toFileResp(*file)})
}

func (h *ExportHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	files, err := h.exports.List(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]fileResp, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResp(f))
	}
	util.Success(c, util.Response{"files": out})
}

// Download streams a stored export back to the user.
func (h *ExportHandler) Download(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	name := c.Param("name")
	if name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file name is required")
		return
	}

	file, reader, err := h.exports.Fetch(user.ID, name)
	if err != nil {
		fail(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Header("Content-Type", file.FileType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logrus.WithError(err).Warn("export download interrupted")
	}
}

func (h *ExportHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	name := c.Param("name")
	if name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file name is required")
		return
	}
	if err := h.exports.Delete(user.ID, name); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "file deleted"})
}
