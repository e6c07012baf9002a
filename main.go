package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweetlabs/sweetshop-be/internal/api"
	"github.com/sweetlabs/sweetshop-be/internal/auth"
	"github.com/sweetlabs/sweetshop-be/internal/config"
	"github.com/sweetlabs/sweetshop-be/internal/database"
	"github.com/sweetlabs/sweetshop-be/internal/logger"
	"github.com/sweetlabs/sweetshop-be/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logging
	logger.Init()

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up services
	userService := services.NewUserService(db)
	sweetService := services.NewSweetService(db)

	// Seed the default admin account on first startup
	if err := userService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Set up token manager with the configured secret and lifetime
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Set up router
	router := api.NewRouter(tokens, userService, sweetService, db)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
