package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sahayak/internal/app"
	"sahayak/internal/config"
	"sahayak/internal/database"
	"sahayak/internal/middleware"
	"sahayak/internal/modules/chatbot"
	"sahayak/internal/modules/payment"
	jwtsvc "sahayak/internal/pkg/jwt"
	"sahayak/internal/pkg/logger"
	"sahayak/internal/pkg/storage"
	"sahayak/internal/relay"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		lg.Fatal("database migrate failed", zap.Error(err))
	}

	sink, err := relay.New(relay.Config{
		Driver:       cfg.RelayDriver,
		URL:          cfg.RelayURL,
		Timeout:      cfg.RelayTimeout,
		AMQPURL:      cfg.AMQPURL,
		AMQPExchange: cfg.AMQPExchange,
	})
	if err != nil {
		lg.Fatal("relay init failed", zap.Error(err))
	}
	dispatcher := relay.NewDispatcher(sink, lg, cfg.RelayTimeout)

	store, err := storage.New(cfg.StorageDriver, cfg.CloudinaryURL, cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		lg.Fatal("storage init failed", zap.Error(err))
	}

	gateway, err := payment.NewGateway(cfg.PaymentGateway, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.StripeSecretKey)
	if err != nil {
		lg.Fatal("payment gateway init failed", zap.Error(err))
	}

	deps := app.Deps{
		Config:   cfg,
		DB:       db,
		Log:      lg,
		JWT:      jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Notifier: dispatcher,
		Limiter:  newLimiter(cfg, lg),
		Store:    store,
		Gateway:  gateway,
	}

	var gemini *chatbot.GeminiCompleter
	if cfg.GeminiAPIKey != "" {
		gemini, err = chatbot.NewGeminiCompleter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			lg.Warn("chatbot disabled", zap.Error(err))
		} else {
			deps.Completer = gemini
		}
	}

	a := app.New(deps)
	if err := a.Auth.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		lg.Fatal("admin seed failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}

	if err := dispatcher.Close(); err != nil {
		lg.Warn("relay close failed", zap.Error(err))
	}
	if gemini != nil {
		_ = gemini.Close()
	}
	if err := database.Close(db); err != nil {
		lg.Warn("database close failed", zap.Error(err))
	}
	lg.Info("server stopped")
}

// newLimiter prefers the shared Redis bucket and falls back to a per-process
// limiter when Redis is not configured or unreachable.
func newLimiter(cfg *config.Config, lg *zap.Logger) middleware.Limiter {
	if cfg.RateLimitPerMin == 0 {
		return nil
	}
	if cfg.RedisAddr == "" {
		return middleware.NewMemoryLimiter(cfg.RateLimitPerMin)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		lg.Warn("redis unreachable, using in-memory rate limiter", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return middleware.NewMemoryLimiter(cfg.RateLimitPerMin)
	}
	return middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMin)
}
