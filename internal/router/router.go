package router

import (
	"net/http"

	"github.com/finman-2025/finman-backend/internal/config"
	"github.com/finman-2025/finman-backend/internal/handler"
	"github.com/finman-2025/finman-backend/internal/middleware"
	"github.com/finman-2025/finman-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Category  *handler.CategoryHandler
	Expense   *handler.ExpenseHandler
	Analytics *handler.AnalyticsHandler
	Tip       *handler.TipHandler
	Export    *handler.ExportHandler
	Receipt   *handler.ReceiptHandler
}

// Setup builds the gin engine and mounts all routes. rdb may be nil, which
// disables rate limiting.
func Setup(cfg *config.Config, users *repository.UserRepository, rdb *redis.Client, h Handlers) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// uptime probe, also the keepalive ping target
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// stored objects (avatars, category icons, exports)
	if cfg.Storage.Dir != "" {
		r.Static("/files", cfg.Storage.Dir)
	}

	api := r.Group("/api")
	if rdb != nil && cfg.Redis.RateRPS > 0 {
		api.Use(middleware.RateLimit(rdb, cfg.Redis.RateRPS))
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWT.Secret, users))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.PUT("/auth/password", h.Auth.ChangePassword)

		protected.GET("/users/me", h.User.Me)
		protected.PUT("/users/me", h.User.UpdateProfile)
		protected.DELETE("/users/me", h.User.Delete)
		protected.PUT("/users/me/avatar", h.User.UpdateAvatar)
		protected.DELETE("/users/me/avatar", h.User.DeleteAvatar)

		protected.GET("/categories", h.Category.List)
		protected.GET("/categories/:id", h.Category.Get)
		protected.POST("/categories", h.Category.Create)
		protected.PUT("/categories/:id", h.Category.Update)
		protected.DELETE("/categories/:id", h.Category.Delete)

		protected.GET("/expenses", h.Expense.List)
		protected.GET("/expenses/:id", h.Expense.Get)
		protected.POST("/expenses", h.Expense.Create)
		protected.PUT("/expenses/:id", h.Expense.Update)
		protected.DELETE("/expenses/:id", h.Expense.Delete)

		protected.GET("/analytics/totals", h.Analytics.Totals)
		protected.GET("/analytics/categories", h.Analytics.Summaries)

		protected.GET("/tips", h.Tip.List)
		protected.GET("/tips/:id", h.Tip.Get)
		protected.POST("/tips", h.Tip.Create)
		protected.PUT("/tips/:id", h.Tip.Update)
		protected.DELETE("/tips/:id", h.Tip.Delete)

		protected.POST("/exports", h.Export.Create)
		protected.GET("/exports", h.Export.List)
		protected.GET("/exports/:name", h.Export.Download)
		protected.DELETE("/exports/:name", h.Export.Delete)

		protected.POST("/receipts/scan", h.Receipt.Scan)
	}

	return r
}
