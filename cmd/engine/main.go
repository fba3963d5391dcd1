package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dock108/theoryline/internal/cache"
	"github.com/dock108/theoryline/internal/config"
	"github.com/dock108/theoryline/internal/database"
	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/logging"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/pipeline"
	"github.com/dock108/theoryline/internal/theory"
)

func main() {
	// Load .env if present; real deployments rely on the environment.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.Environment)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redis, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	ctx := context.Background()
	if err := db.HealthCheck(ctx); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}
	if err := redis.HealthCheck(ctx); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Register the built-in theories
	registry := theory.NewRegistry()
	theory.Bootstrap(registry)

	builder, err := features.NewBuilderForMode(cfg.Engine.FeatureMode)
	if err != nil {
		log.Fatalf("Failed to build feature stack: %v", err)
	}

	gameRepo := database.NewGameRepository(db.Pool, logger)
	oddsRepo := database.NewOddsRepository(db.Pool, logger)
	resultsRepo := database.NewResultsRepository(db.Pool)
	oddsBoard := cache.NewCachedOddsProvider(oddsRepo, redis.Client, cfg.Cache.OddsTTLDuration(), logger)

	backtest := pipeline.NewBacktestPipeline(gameRepo, resultsRepo, builder, cfg.Engine.BatchSize, logger)
	live := pipeline.NewLivePipeline(oddsBoard, builder, cfg.Engine.SignalTTLDuration(), logger)
	trending := pipeline.NewTrendingPipeline(oddsRepo, builder, cfg.Engine.TrendWindow, cfg.Engine.SMAPeriod, logger)

	pctx := models.PipelineContext{
		LeagueID:    cfg.Engine.DefaultLeague,
		Seasons:     cfg.Engine.Seasons,
		FeatureMode: cfg.Engine.FeatureMode,
	}

	for _, entry := range registry.List(true) {
		model, err := registry.Instantiate(entry.Name, nil)
		if err != nil {
			logger.WithError(err).WithField("theory", entry.Name).Error("failed to instantiate theory")
			continue
		}

		rows, err := backtest.Run(ctx, pctx, model)
		if err != nil {
			logger.WithError(err).WithField("theory", entry.Name).Error("backtest run failed")
		} else {
			logger.WithField("theory", entry.Name).WithField("rows", len(rows)).Info("backtest complete")
		}

		signals, err := live.Run(ctx, pctx, model)
		if err != nil {
			logger.WithError(err).WithField("theory", entry.Name).Error("live run failed")
		} else {
			logger.WithField("theory", entry.Name).WithField("signals", len(signals)).Info("live scan complete")
		}

		indicators, err := trending.Run(ctx, pctx, model)
		if err != nil {
			logger.WithError(err).WithField("theory", entry.Name).Error("trending run failed")
		} else {
			logger.WithField("theory", entry.Name).WithField("indicators", len(indicators)).Info("trend scan complete")
		}
	}

	logger.Info("Engine pass finished")
}
