package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/evamarchetti/lessonplanner-backend/api/routes"
	"github.com/evamarchetti/lessonplanner-backend/internal/auth"
	"github.com/evamarchetti/lessonplanner-backend/internal/generator"
	"github.com/evamarchetti/lessonplanner-backend/internal/plans"
	"github.com/evamarchetti/lessonplanner-backend/internal/sessions"
	"github.com/evamarchetti/lessonplanner-backend/internal/settings"
	"github.com/evamarchetti/lessonplanner-backend/internal/users"
	"github.com/evamarchetti/lessonplanner-backend/pkg/config"
	"github.com/evamarchetti/lessonplanner-backend/pkg/db"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
	"github.com/evamarchetti/lessonplanner-backend/pkg/metrics"
	"github.com/evamarchetti/lessonplanner-backend/pkg/migrate"
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

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	gormDB := dbClient.DB()
	provider := auth.NewGoogleProvider(cfg.Google)
	authService := auth.NewService(
		provider,
		users.NewRepository(gormDB),
		sessions.NewRepository(gormDB),
		cfg.Session.TTL,
	)
	settingsRepo := settings.NewRepository(gormDB)
	settingsService := settings.NewService(settingsRepo)
	generatorService := generator.NewService(
		generator.NewOpenAIClient(cfg.OpenAI),
		settingsRepo,
		cfg.OpenAI.APIKey,
	)
	plansService := plans.NewService(
		plans.NewRepository(gormDB),
		plans.NewCommunityRepository(gormDB),
	)

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			httpMetrics,
			metrics.Handler(registry),
			authService,
			settingsService,
			generatorService,
			plansService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
