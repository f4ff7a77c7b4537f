package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"heavyrent-backend/config"
	"heavyrent-backend/internal/api"
	"heavyrent-backend/internal/auth"
	"heavyrent-backend/internal/db"
	"heavyrent-backend/internal/notification"
	"heavyrent-backend/internal/service"
	"heavyrent-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "heavyrent ", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("failed to read .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		logger.Printf("no config file at %s, using environment only", configPath)
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Fatalf("JWT secret must be configured (auth.jwt_secret or JWT_SECRET)")
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Printf("database initialized (%s)", cfg.Database.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	users := service.NewUsers(appStore)
	deps := api.Deps{
		Users:         users,
		Auth:          service.NewAuth(users, tokens),
		Machines:      service.NewMachines(appStore, users),
		Subscriptions: appStore,
	}

	var notifier service.Notifier
	if cfg.Push.Enabled() {
		webpushOptions := &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, appStore, webpushOptions)
		pool.Start(ctx)
		notifier = pool
		deps.WebPush = webpushOptions
		logger.Printf("rental notifications enabled with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured, rental notifications disabled")
	}
	deps.Rentals = service.NewRentals(appStore, appStore, notifier)

	if cfg.Auth.Google.ClientID != "" {
		deps.Provider = auth.NewGoogleProvider(cfg.Auth.Google)
		deps.States = auth.NewStateStore(cfg.Auth.Google.StateTTL)
	} else {
		logger.Println("Google client not configured, /auth/google is disabled")
	}

	router := api.NewRouter(api.NewHandler(deps), tokens, api.RouterOptions{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		CacheTTL:        time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
