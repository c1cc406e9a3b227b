package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipment-tracker/config"
	httpHandler "shipment-tracker/internal/adapter/http/handler"
	pgStorage "shipment-tracker/internal/adapter/storage/postgres"
	"shipment-tracker/internal/service"
	"shipment-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Shipment Tracker")

	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Create the shipments table and apply additive column migrations
	if err := pgStorage.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database schema")
	}
	log.Info().Msg("Database schema ready")

	// Initialize repositories
	shipmentRepo := pgStorage.NewShipmentRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize business services
	shipmentSvc := service.NewShipmentService(shipmentRepo, transactor, log)

	// Initialize health checker
	pgHealth := pgStorage.NewHealthCheck(pool)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ShipmentSvc: shipmentSvc,
		DBHealth:    pgHealth,
		Dashboard:   cfg.Dashboard,
		Logger:      log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
