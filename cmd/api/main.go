package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/ratelimit"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/storage"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const cleanupInterval = time.Minute

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "env", cfg.Environment)

	secLog, err := security.NewSecurityLogger(security.LoggerConfig{
		ServiceName: "portfolio-backend",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		LogDir:      cfg.LogDir,
		MaxBackups:  5,
		MaxAgeDays:  30,
	})
	if err != nil {
		logger.Log.Error("Failed to create security logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = secLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Rate Limit Store
	memStore := ratelimit.NewMemoryStore()
	go memStore.RunCleanup(ctx, cleanupInterval)

	var store ratelimit.Store = memStore
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limit store", "error", err)
		} else {
			defer client.Close()
			store = ratelimit.NewFallbackStore(ratelimit.NewRedisStore(client), memStore, cfg.RateLimitFailClose, func(err error) {
				secLog.Log(context.Background(), security.SecurityEvent{
					Event:   security.EventRateLimitError,
					Details: map[string]interface{}{"error": err.Error()},
				})
			})
			logger.Log.Info("Rate limiting backed by Redis")
		}
	}

	contactLimiter := ratelimit.NewLimiter(ratelimit.Config{
		Limit:     cfg.ContactRateLimit,
		Window:    cfg.ContactRateWindow,
		KeyPrefix: "rl:contact:",
	}, store)
	globalLimiter := ratelimit.NewLimiter(ratelimit.Config{
		Limit:     cfg.GlobalRateLimit,
		Window:    cfg.GlobalRateWindow,
		KeyPrefix: "rl:global:",
	}, store)

	// 4. Setup Mail Transport
	transport, from, to := newTransport(cfg)
	dispatcher := email.NewDispatcher(transport, from, to)

	// 5. Setup Asset Store
	assets, staticDir, err := newAssetStore(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to set up asset store", "error", err)
		os.Exit(1)
	}

	// 6. Setup UseCases
	validate := validator.New()
	emailValidator := validation.NewEmailValidator(validate)
	contactUC := usecase.NewContactUsecase(validation.NewFieldValidator(validate), emailValidator, dispatcher, secLog)
	emailUC := usecase.NewEmailUsecase(emailValidator)
	healthUC := usecase.NewHealthUsecase(time.Now)

	// 7. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		EmailUC:        emailUC,
		HealthUC:       healthUC,
		ContactLimiter: contactLimiter,
		GlobalLimiter:  globalLimiter,
		Assets:         assets,
		StaticDir:      staticDir,
		SecurityLogger: secLog,
		Logger:         logger.Log,
		Config:         cfg,
	})
	if err != nil {
		logger.Log.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server is running", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// newTransport picks the mail transport named by MAIL_PROVIDER along with
// the sender and recipient addresses it should use.
func newTransport(cfg *config.Config) (email.Transport, string, string) {
	switch cfg.MailProvider {
	case config.MailProviderPostmark:
		return email.NewPostmarkTransport(cfg.PostmarkToken, cfg.PostmarkAccount), cfg.EmailFrom, cfg.RecipientEmail
	case config.MailProviderResend:
		return email.NewResendTransport(cfg.ResendAPIKey), cfg.EmailFrom, cfg.RecipientEmail
	case config.MailProviderMemory:
		logger.Log.Warn("MAIL_PROVIDER=memory, contact messages are recorded in memory and never delivered")
		return email.NewMemoryTransport(), orDefault(cfg.EmailFrom, "portfolio@localhost"), orDefault(cfg.RecipientEmail, "inbox@localhost")
	default:
		return email.NewSMTPTransport(email.SMTPConfig{
			Host:     cfg.EmailHost,
			Port:     cfg.EmailPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
		}), cfg.EmailFrom, cfg.RecipientEmail
	}
}

// newAssetStore reads assets from the configured bucket, or from AssetsDir
// which is then also served statically.
func newAssetStore(ctx context.Context, cfg *config.Config) (storage.AssetStore, string, error) {
	if cfg.AssetsBucket == "" {
		store, err := storage.NewLocalStore(cfg.AssetsDir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Root(), nil
	}

	client, err := storage.NewS3Client(ctx, storage.S3Config{
		Provider:        storage.S3Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		return nil, "", err
	}
	logger.Log.Info("Serving assets from bucket", "bucket", cfg.AssetsBucket, "provider", cfg.S3Provider)
	return storage.NewS3Store(client, cfg.AssetsBucket, cfg.AssetsPrefix), "", nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
