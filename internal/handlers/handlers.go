package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"marketgate/api/internal/config"
	"marketgate/api/internal/middleware"
	"marketgate/api/internal/repository"
	"marketgate/api/internal/service"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	identity *service.IdentityService
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	consumerRepo := repository.NewConsumerRepository(db)
	retailerRepo := repository.NewRetailerRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	identityCache := service.NewRedisIdentityCache(cache, log)
	auth := service.NewAuthService(consumerRepo, retailerRepo, adminRepo, sessionRepo, identityCache, cfg, log)
	identity := service.NewIdentityService(consumerRepo, retailerRepo, adminRepo, sessionRepo, identityCache, cfg.Security.IdentityCacheTTL, log)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     auth,
		identity: identity,
		db:       db,
		cache:    cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login", h.LoginConsumer)
		auth.POST("/retailer/login", h.LoginRetailer)
		auth.POST("/admin/login", h.LoginAdmin)
		auth.POST("/logout", h.Logout)

		protected := v1.Group("/auth")
		protected.Use(middleware.SessionAuth(h.identity))
		protected.GET("/me", h.Me)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
