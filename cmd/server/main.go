package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus_market/internal/config"
	"campus_market/internal/handler"
	"campus_market/internal/repository"
	"campus_market/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Storage ---
	var storage repository.Storage
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		dbCfg, err := config.LoadDBConfig()
		if err != nil {
			log.Fatalf("Failed to load DB config: %v", err)
		}
		dbPool, err := config.ConnectDB(dbCfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()
		if err := config.AutoMigrate(dbPool); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
		storage = repository.NewPgStorage(dbPool)
	default:
		memStorage := repository.NewMemStorage()
		if cfg.SeedSampleData {
			if err := memStorage.SeedSampleData(context.Background()); err != nil {
				log.Fatalf("Failed to seed sample data: %v", err)
			}
			log.Println("Seeded sample listings")
		}
		storage = memStorage
	}

	// --- Router ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)
	router := handler.NewRouter(storage, jwtUtil, cfg.AdminPassword)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s (%s storage)", cfg.ServerPort, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
