package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"sune-tv/internal/config"
	"sune-tv/internal/infra/database"
	infraKafka "sune-tv/internal/infra/kafka"
	infraRedis "sune-tv/internal/infra/redis"
	"sune-tv/internal/seed"
	"sune-tv/pkg/logger"

	"go.uber.org/zap"
)

const (
	lockKey = "sune:seed"
	lockTTL = 2 * time.Minute
)

// Loads the sample catalog. With redis enabled only one seeder runs at a time.
func main() {
	configPath := flag.String("config", "", "path to config file (default $SUNE_CONFIG or configs/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), lockTTL)
	defer cancel()

	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	if cfg.Redis.Enabled {
		if err := infraRedis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to init redis", zap.Error(err))
		}
		defer infraRedis.Close()

		lock, err := infraRedis.AcquireLock(ctx, infraRedis.Get(), lockKey, lockTTL)
		if errors.Is(err, infraRedis.ErrLockHeld) {
			logger.Warn("Another seeder is running, skipping")
			return
		}
		if err != nil {
			logger.Fatal("Failed to acquire seed lock", zap.Error(err))
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil {
				logger.Warn("Failed to release seed lock", zap.Error(err))
			}
		}()
	}

	res, err := seed.Run(ctx, database.Get())
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Info("Sample data ready",
		zap.Int("categories_created", res.CategoriesCreated),
		zap.Int("categories_existing", res.CategoriesExisting),
		zap.Int("streams_created", res.StreamsCreated),
		zap.Int("streams_existing", res.StreamsExisting),
	)

	if cfg.Kafka.Enabled && len(res.CreatedStreamIDs) > 0 {
		producer := infraKafka.NewProducer(&cfg.Kafka)
		defer producer.Close()
		err := producer.PublishStreamChanged(ctx, &infraKafka.StreamChangedEvent{
			Action:     infraKafka.ActionCreated,
			StreamIDs:  res.CreatedStreamIDs,
			OccurredAt: time.Now(),
		})
		if err != nil {
			logger.Warn("Failed to announce seeded streams", zap.Error(err))
		}
	}
}
