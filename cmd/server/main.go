package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portside_pos_backend/internal/config"
	"portside_pos_backend/internal/database"
	"portside_pos_backend/internal/events"
	"portside_pos_backend/internal/metrics"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/internal/router"
	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		// Sessions will not survive a restart.
		cfg.JWTSecret = uuid.NewString()
		utils.LogWarn(nil, "JWT_SECRET not set, using a random secret")
	}
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	store, closeStore := openStore(cfg)
	defer closeStore()

	if err := services.Bootstrap(store); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare collections")
	}

	publisher := openPublisher(cfg)
	defer publisher.Close()

	metrics.InitMetrics()

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(metrics.PrometheusMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	board := router.Setup(engine, store, cfg, publisher)
	if err := board.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start kitchen board")
	}
	board.Refresh()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutting down server")

	// Stop the board first so open event streams end and Shutdown can drain.
	board.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
	utils.LogInfo("Server exited")
}

func openStore(cfg *config.Config) (repositories.CollectionStore, func()) {
	if cfg.StorageDriver == config.StorageMemory {
		utils.LogWarn(nil, "Using in-memory storage, data is lost on restart")
		return repositories.NewMemoryStore(), func() {}
	}

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	return repositories.NewPostgresStore(db), func() {
		if err := db.Close(); err != nil {
			utils.LogError(err, "Failed to close database")
		}
	}
}

func openPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}
	publisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		// Orders must keep flowing without the broker.
		utils.LogWarn(err, "Order events disabled, broker unreachable")
		return events.NopPublisher{}
	}
	utils.LogInfo("Publishing order events", map[string]interface{}{"exchange": cfg.AMQPExchange})
	return publisher
}
