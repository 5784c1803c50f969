package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/finman-2025/finman-backend/internal/middleware"
	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser pulls the authenticated user set by the auth middleware.
// Writes the error response itself when the user is missing.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(middleware.CurrentUserKey)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

// pathID parses the :id path param. Writes the error response on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// stageUpload copies a multipart file into the scratch dir under a fresh
// name so the service layer can move it into object storage.
func stageUpload(c *gin.Context, file *multipart.FileHeader, tmpDir string) (*service.ImageUpload, error) {
	ext := filepath.Ext(file.Filename)
	localPath := filepath.Join(tmpDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		return nil, err
	}
	return &service.ImageUpload{
		LocalPath: localPath,
		Ext:       ext,
		MimeType:  file.Header.Get("Content-Type"),
	}, nil
}

// fail translates a service error into the unified error envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrExpenseNotFound),
		errors.Is(err, service.ErrTipNotFound),
		errors.Is(err, service.ErrFileNotFound),
		errors.Is(err, service.ErrAvatarNotFound),
		errors.Is(err, service.ErrNoExpenses):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrNameExists),
		errors.Is(err, service.ErrUsernameTaken):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	case errors.Is(err, service.ErrTypeChange),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrBadFileType):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, service.ErrWrongCredentials),
		errors.Is(err, service.ErrInvalidToken):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error, please retry")
	}
}

// dateLayout is the wire format for plain dates.
const dateLayout = "2006-01-02"
