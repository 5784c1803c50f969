package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finman-2025/finman-backend/internal/config"
	"github.com/finman-2025/finman-backend/internal/database"
	"github.com/finman-2025/finman-backend/internal/handler"
	"github.com/finman-2025/finman-backend/internal/ocr"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/router"
	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestServer wires the whole API over an in-memory database and a
// filesystem object store.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	store, err := storage.NewLocal(t.TempDir(), "http://test/files")
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT: config.JWTConfig{
			Secret: "test-secret", Issuer: "finman",
			AccessExpireMins: 15, RefreshExpireHours: 168,
		},
		Storage: config.StorageConfig{TmpDir: t.TempDir()},
	}

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	expenses := repository.NewExpenseRepository(db)
	tips := repository.NewTipRepository(db)
	files := repository.NewExportedFileRepository(db)

	analyticsSvc := service.NewAnalyticsService(expenses, categories)
	expenseSvc := service.NewExpenseService(expenses, categories, analyticsSvc)

	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(service.NewAuthService(users,
			cfg.JWT.Secret, cfg.JWT.Issuer, 0, 0)),
		User:      handler.NewUserHandler(service.NewUserService(users, store), &cfg.Storage),
		Category:  handler.NewCategoryHandler(service.NewCategoryService(categories, expenses, store), &cfg.Storage),
		Expense:   handler.NewExpenseHandler(expenseSvc),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc),
		Tip:       handler.NewTipHandler(service.NewTipService(tips)),
		Export:    handler.NewExportHandler(service.NewExportService(files, expenseSvc, store, cfg.Storage.TmpDir)),
		Receipt:   handler.NewReceiptHandler(service.NewReceiptService(ocr.NewClient("", 0)), &cfg.Storage),
	}

	return router.Setup(cfg, users, nil, handlers)
}

type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// signup registers and logs in a fresh user, returning an access token.
func signup(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username, "password": "Str0ngPass", "confirm_password": "Str0ngPass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username, "password": "Str0ngPass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := env.Data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	r := newTestServer(t)

	// mismatched confirmation
	w, env := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "carol", "password": "Str0ngPass", "confirm_password": "Other1234",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40001, env.Code)

	token := signup(t, r, "carol")

	// duplicate username conflicts
	w, env = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "carol", "password": "Str0ngPass", "confirm_password": "Str0ngPass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 40901, env.Code)

	// wrong credentials
	w, env = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "carol", "password": "Nope12345",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40101, env.Code)

	// protected route without a token
	w, env = doJSON(t, r, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40101, env.Code)

	// with the token
	w, env = doJSON(t, r, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := env.Data["user"].(map[string]interface{})
	assert.Equal(t, "carol", user["username"])
}

func postCategoryForm(t *testing.T, r *gin.Engine, token string, fields map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/categories", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCategoryAndExpenseFlow(t *testing.T) {
	r := newTestServer(t)
	token := signup(t, r, "dave")

	w, env := postCategoryForm(t, r, token, map[string]string{
		"name": "food", "type": "OUTCOME", "limit": "100",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cat := env.Data["category"].(map[string]interface{})
	assert.Equal(t, "Food", cat["name"])
	catID := cat["id"].(float64)

	// duplicate name is a conflict
	w, env = postCategoryForm(t, r, token, map[string]string{
		"name": "FOOD", "type": "OUTCOME",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 40901, env.Code)

	// an expense within the limit comes back without a warning
	w, env = doJSON(t, r, http.MethodPost, "/api/expenses", token, gin.H{
		"value": 60, "date": "2025-06-10", "categoryId": catID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, env.Data["message"])
	expense := env.Data["expense"].(map[string]interface{})
	assert.Equal(t, "OUTCOME", expense["type"])

	// pushing past the monthly limit still saves but warns
	w, env = doJSON(t, r, http.MethodPost, "/api/expenses", token, gin.H{
		"value": 50, "date": "2025-06-12", "categoryId": catID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	msg, _ := env.Data["message"].(string)
	assert.Contains(t, msg, "Food")

	// the category list carries the virtual bucket last
	w, env = doJSON(t, r, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cats := env.Data["categories"].([]interface{})
	require.Len(t, cats, 2)
	last := cats[len(cats)-1].(map[string]interface{})
	assert.Equal(t, "Other", last["name"])

	// another user cannot see dave's category
	other := signup(t, r, "erin")
	w, env = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/categories/%d", int(catID)), other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40401, env.Code)

	// totals over the month
	w, env = doJSON(t, r, http.MethodGet,
		"/api/analytics/totals?startDate=2025-06-01&endDate=2025-06-30", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	totals := env.Data["totals"].(map[string]interface{})
	assert.EqualValues(t, 110, totals["spent"])
}

func TestExportEndpointEmptyRange(t *testing.T) {
	r := newTestServer(t)
	token := signup(t, r, "frank")

	w, env := doJSON(t, r, http.MethodPost, "/api/exports", token, gin.H{
		"startDate": "2025-06-01", "endDate": "2025-06-30", "format": "csv",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40401, env.Code)

	w, env = doJSON(t, r, http.MethodPost, "/api/exports", token, gin.H{
		"startDate": "2025-06-01", "endDate": "2025-06-30", "format": "pdf",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40001, env.Code)
}

func TestHealthz(t *testing.T) {
	r := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
