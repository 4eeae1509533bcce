package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Laibah-Shahid/ats/internal/ai/gemini"
	"github.com/Laibah-Shahid/ats/internal/config"
	"github.com/Laibah-Shahid/ats/internal/database"
	"github.com/Laibah-Shahid/ats/internal/database/postgres"
	"github.com/Laibah-Shahid/ats/internal/delivery/http/handler"
	"github.com/Laibah-Shahid/ats/internal/delivery/http/middleware"
	"github.com/Laibah-Shahid/ats/internal/delivery/http/routes"
	v1 "github.com/Laibah-Shahid/ats/internal/delivery/http/routes/v1"
	"github.com/Laibah-Shahid/ats/internal/infrastructure/cache"
	"github.com/Laibah-Shahid/ats/internal/pkg/jwt"
	"github.com/Laibah-Shahid/ats/internal/repository"
	"github.com/Laibah-Shahid/ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap wires the whole service: store, cache, scorer, usecase, HTTP.
// The returned cleanup closes the shared clients.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	generator, err := gemini.NewGenerator(ctx, cfg.Gemini)
	if err != nil {
		_ = db.Close()
		_ = redisCache.Close()
		return nil, nil, fmt.Errorf("create gemini generator: %w", err)
	}
	scorer := gemini.NewScorer(generator, logger)

	jobRepo := repository.NewPostgresJobRepository(db)
	resumeRepo := repository.NewPostgresResumeRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)

	matcher := usecase.NewMatcher(jobRepo, resumeRepo, matchRepo, scorer, redisCache, logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	f.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	}))
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(logger).Middleware())

	registry := routes.NewRegistry(v1.Deps{
		JWT:          jwtSvc,
		Jobs:         handler.NewJobHandler(jobRepo, redisCache),
		Match:        handler.NewMatchHandler(matcher),
		MatchQueries: handler.NewMatchQueryHandler(matchRepo, redisCache),
	})
	registry.Register(f)

	cleanup := func() error {
		var firstErr error
		if err := redisCache.Close(); err != nil {
			firstErr = err
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	return &App{Fiber: f}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
