package router

import (
	"net/http"

	"ganeshai/config"
	"ganeshai/internal/handler"
	"ganeshai/internal/middleware"
	"ganeshai/internal/repository"
	"ganeshai/internal/responder"
	"ganeshai/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the shared components the router wires into handlers. The
// Telegram bot reuses the same services, so they are constructed in main and
// passed down.
type Deps struct {
	Accounts  *service.AccountService
	Ledger    *service.LedgerService
	Responder *responder.Responder
	UserRepo  *repository.UserRepository
}

func Setup(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)))

	ledgerRepo := repository.NewLedgerRepository(db)
	chatRepo := repository.NewChatRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authHandler := handler.NewAuthHandler(cfg, deps.Accounts, deps.Ledger)
	chatHandler := handler.NewChatHandler(deps.Accounts, deps.Ledger, deps.Responder, deps.UserRepo)
	meHandler := handler.NewMeHandler(cfg, deps.UserRepo, ledgerRepo, chatRepo, deps.Ledger)
	adminHandler := handler.NewAdminHandler(deps.UserRepo, chatRepo, statsRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		api.POST("/quick-chat", chatHandler.QuickChat)
		api.POST("/chat", authMw, chatHandler.Chat)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/dashboard", meHandler.Dashboard)
			me.GET("/ledger", meHandler.Ledger)
			me.GET("/referrals", meHandler.Referrals)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/overview", adminHandler.Overview)
			admin.POST("/premium", adminHandler.GrantPremium)
		}
	}

	return r
}
