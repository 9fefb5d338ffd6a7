package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"qaforum/api/internal/cache"
	"qaforum/api/internal/config"
	"qaforum/api/internal/database"
	"qaforum/api/internal/handlers"
	"qaforum/api/internal/jobs"
	"qaforum/api/internal/log"
	"qaforum/api/internal/server"
	"qaforum/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	store, closeStore, err := database.OpenStore(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}

	var (
		redisClient *redis.Client
		statsCache  service.StatsCache
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		statsCache = cache.NewStatsCache(redisClient, cfg.Redis.StatsTTL)
	}

	services := service.New(store, statsCache, cfg.Security, logger)
	if err := services.Auth.EnsureAdmin(ctx, cfg.Admin); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed admin account")
	}

	handlerSet := handlers.NewHandlerSet(logger, cfg, services, store, redisClient)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(statsRefresher(services.Stats, logger), cfg.Jobs.StatsSchedule, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, closeStore, redisClient)
}

// statsRefresher returns nil when there is no cache to warm, which leaves
// the refresh job unscheduled.
func statsRefresher(stats *service.StatsService, logger zerolog.Logger) jobs.StatsRefresher {
	if stats == nil || !stats.Cached() {
		logger.Info().Msg("stats cache disabled, refresh job not scheduled")
		return nil
	}
	return stats
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, closeStore func(), redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn().Msg("stats refresh still running at shutdown")
	}

	closeStore()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
