// Package main runs the QR check-in HTTP server with the live dashboard feed
// and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/qr-checkin/backend/config"
	"github.com/qr-checkin/backend/internal/checkins"
	"github.com/qr-checkin/backend/internal/guests"
	"github.com/qr-checkin/backend/internal/middleware"
	"github.com/qr-checkin/backend/internal/pages"
	"github.com/qr-checkin/backend/internal/realtime"
	"github.com/qr-checkin/backend/internal/rsvps"
	"github.com/qr-checkin/backend/internal/settings"
	"github.com/qr-checkin/backend/pkg/database"
	"github.com/qr-checkin/backend/pkg/redis"
	"github.com/qr-checkin/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Redis only carries the live feed across instances; without it the feed
	// still works locally.
	var feedPubSub *realtime.RedisPubSub
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis unavailable, live feed is instance-local", zap.Error(err))
		} else {
			defer rdb.Close()
			feedPubSub = realtime.NewRedisPubSub(rdb.Client, logger)
		}
	}

	var hub *realtime.Hub
	if feedPubSub != nil {
		hub = realtime.NewHub(logger, feedPubSub, feedPubSub)
	} else {
		hub = realtime.NewHub(logger, nil, nil)
	}

	// Guest directory
	guestRepo := guests.NewRepository(pool)
	guestHandler := guests.NewHandler(guestRepo, logger)

	// Event settings
	settingsRepo := settings.NewRepository(pool)
	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(settingsService, logger)

	// RSVP tracker
	rsvpRepo := rsvps.NewRepository(pool)
	rsvpTracker := rsvps.NewTracker(rsvpRepo)
	rsvpHandler := rsvps.NewHandler(rsvpTracker, rsvpRepo, guestRepo, logger)

	// Check-in ledger and orchestrator
	ledger := checkins.NewRepository(pool)
	checkinService := checkins.NewService(settingsRepo, guestRepo, ledger, hub, logger)
	checkinHandler := checkins.NewHandler(checkinService, ledger, logger)

	// HTML pages
	pageHandler := pages.NewHandler(guestRepo, ledger, settingsService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "web/static")

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Pages
	router.GET("/", pageHandler.Home)
	router.GET("/checkin/:guestId", pageHandler.Checkin)

	// Guest profile
	router.GET("/api/guest/:guestId", guestHandler.Get)
	router.POST("/api/guest/:guestId", guestHandler.Update)

	// RSVP
	router.POST("/api/rsvp/:guestId", rsvpHandler.Record)
	router.GET("/api/rsvp/stats", rsvpHandler.Stats)
	router.GET("/api/rsvp/:guestId", rsvpHandler.Get)

	// Check-in
	router.POST("/api/checkin/:guestId", checkinHandler.Process)
	router.GET("/api/checkins", checkinHandler.List)
	router.GET("/api/export", checkinHandler.Export)

	// Admin
	router.POST("/api/admin/toggle-checkin", settingsHandler.ToggleCheckin)
	router.GET("/api/admin/event-settings", settingsHandler.Get)
	router.POST("/api/admin/event-settings", settingsHandler.Update)

	// Live dashboard feed
	router.GET("/ws", realtime.ServeWs(hub, logger))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
