package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/openice/rinkrat/internal/api/handlers"
	"github.com/openice/rinkrat/internal/config"
	"github.com/openice/rinkrat/internal/service"
	"github.com/openice/rinkrat/internal/storage"
	"github.com/openice/rinkrat/internal/websocket"
	"github.com/openice/rinkrat/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open data directory")
	}

	sim, err := service.New(store, log, service.Options{
		Seed:            cfg.SimSeed,
		GamesPerMatchup: cfg.GamesPerMatchup,
		Density:         cfg.ScheduleDensity,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to start simulation service")
	}

	hub := websocket.NewHub(log)
	go hub.Run()
	sim.SetBroadcaster(hub)

	// Periodic flush of the world to disk.
	var scheduler *cron.Cron
	if cfg.AutosaveCron != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.AutosaveCron, func() {
			if err := sim.Autosave(); err != nil {
				log.WithError(err).Error("Autosave failed")
			}
		}); err != nil {
			log.WithError(err).Fatal("Invalid autosave_cron expression")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	healthHandler := handlers.NewHealthHandler(sim, hub)
	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.HEAD("/ready", healthHandler.GetReady)
	router.GET("/metrics", healthHandler.GetMetrics)

	apiV1 := router.Group("/api/v1")
	simHandler := handlers.NewSimHandler(sim, log)
	simHandler.RegisterRoutes(apiV1)

	router.GET("/ws", hub.HandleWebSocket)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Final flush with backups so a restart resumes exactly here.
	if err := sim.Save(); err != nil {
		log.WithError(err).Error("Final save failed")
	}

	log.Info("Server exited")
}
