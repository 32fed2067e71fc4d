// @title Website Stats Service API
// @version 1.0
// @description Website event collection and period-over-period traffic stats.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"website-stats-service/internal/auth"
	eventsHttp "website-stats-service/internal/events/adapters/http/fiber"
	eventsRepoPg "website-stats-service/internal/events/adapters/postgres"
	eventsUsecase "website-stats-service/internal/events/core/usecase"
	"website-stats-service/internal/platform/config"
	"website-stats-service/internal/platform/logger"
	"website-stats-service/internal/platform/metrics"
	"website-stats-service/internal/platform/middleware"
	"website-stats-service/internal/platform/postgres"
	platformRedis "website-stats-service/internal/platform/redis"
	statsHttp "website-stats-service/internal/stats/adapters/http/fiber"
	statsRepoPg "website-stats-service/internal/stats/adapters/postgres"
	statsCache "website-stats-service/internal/stats/adapters/redis"
	"website-stats-service/internal/stats/core/ports"
	statsUsecase "website-stats-service/internal/stats/core/usecase"
	websitesRepoPg "website-stats-service/internal/websites/adapters/postgres"
	websitesUsecase "website-stats-service/internal/websites/core/usecase"
	"website-stats-service/migrations"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "website-stats-service/docs"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Component("api")

	ctx := context.Background()

	// DB connection
	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(migrations.FS, cfg.Postgres.DSN); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
		log.Info().Msg("migrations applied")
	}

	m := metrics.New()

	// Repositories
	querier := postgres.NewQuerier(db)
	eventRepository := eventsRepoPg.NewEventRepository(db)
	statsRepository := statsRepoPg.NewStatsRepository(querier)
	websiteRepository := websitesRepoPg.NewWebsiteRepository(querier)

	var statsReader ports.StatsReaderPort = statsRepository
	if cfg.Redis.Enabled {
		rdb, err := platformRedis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		statsReader = statsCache.NewCachedStatsReader(statsRepository, rdb, cfg.Redis.CacheTTL, m)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("stats cache enabled")
	}

	// Usecases
	storeEventUC := eventsUsecase.NewStoreEventUseCase(eventRepository)
	getStatsUC := statsUsecase.NewGetWebsiteStatsUseCase(statsReader, statsRepository,
		statsUsecase.WithQueryObserver(m),
	)
	canViewUC := websitesUsecase.NewCanViewWebsiteUseCase(websiteRepository)

	authMiddleware := auth.NewMiddleware(auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(logger.Component("http")),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger.Component("http")))
	app.Use(middleware.Metrics(m))
	app.Use(middleware.CORS(cfg.CORS))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	api := app.Group("/api")

	eventsHttp.NewEventHandler(storeEventUC, m).Register(api)
	statsHttp.NewStatsHandler(getStatsUC, canViewUC).Register(api, authMiddleware.Authenticate)

	// Graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("addr", addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}
