package v1

import (
	"fmt"
	"log/slog"
	"net/http"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/ratelimit"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	EmailUC   domain.EmailUsecase
	HealthUC  usecase.HealthUsecase

	ContactLimiter *ratelimit.Limiter // contact form only
	GlobalLimiter  *ratelimit.Limiter // every route

	Assets storage.AssetStore
	// StaticDir is served under /assets; empty disables the static route
	StaticDir string

	SecurityLogger *security.SecurityLogger
	Logger         *slog.Logger
	Config         *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := gin.New()
	// nil trusts nobody: ClientIP falls back to the socket address
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.MaintenanceMode(middleware.MaintenanceConfig{
		Enabled:   cfg.MaintenanceMode,
		Duration:  cfg.MaintenanceDuration,
		SkipPaths: []string{"/", "/api/health"},
		Logger:    deps.SecurityLogger,
	}))
	r.Use(middleware.RateLimitMiddleware(deps.GlobalLimiter, middleware.GlobalRateLimitConfig(deps.SecurityLogger)))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	r.Use(middleware.RequestMonitor(deps.SecurityLogger))
	r.Use(middleware.ErrorHandler(deps.Logger))

	api := r.Group("/api")

	NewSystemHandler(r, api, deps.HealthUC)
	NewContactHandler(api, deps.ContactUC, middleware.RateLimitMiddleware(deps.ContactLimiter, middleware.ContactRateLimitConfig(deps.SecurityLogger)))
	NewEmailHandler(api, deps.EmailUC)
	NewDownloadHandler(api, deps.Assets)

	if deps.StaticDir != "" {
		r.Static("/assets", deps.StaticDir)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found",
			fmt.Sprintf("The route %s does not exist on this server", c.Request.URL.RequestURI()))
	})

	return r, nil
}
