package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/openhouselabs/openhouse-backend/api/routes"
	"github.com/openhouselabs/openhouse-backend/internal/agents"
	"github.com/openhouselabs/openhouse-backend/internal/auth"
	"github.com/openhouselabs/openhouse-backend/internal/listings"
	"github.com/openhouselabs/openhouse-backend/internal/showings"
	"github.com/openhouselabs/openhouse-backend/pkg/config"
	"github.com/openhouselabs/openhouse-backend/pkg/db"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
	"github.com/openhouselabs/openhouse-backend/pkg/migrate"
	"github.com/openhouselabs/openhouse-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis backs auth rate limiting only; the API stays up without it.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	agentRepo := agents.NewRepository(dbClient.DB())
	listingRepo := listings.NewRepository(dbClient.DB())
	showingRepo := showings.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		AgentRepo:      agentRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	listingService, err := listings.NewService(listingRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create listing service", err)
		os.Exit(1)
	}

	showingService, err := showings.NewService(showings.ServiceParams{
		ShowingRepo: showingRepo,
		ListingRepo: listingRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create showing service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.New(routes.Dependencies{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			AgentRepo:      agentRepo,
			AuthService:    authService,
			ListingService: listingService,
			ShowingService: showingService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
