package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"sune-tv/internal/config"
	"sune-tv/internal/infra/database"
	infraES "sune-tv/internal/infra/elasticsearch"
	infraKafka "sune-tv/internal/infra/kafka"
	"sune-tv/internal/repository"
	"sune-tv/internal/service"
	"sune-tv/pkg/logger"

	"go.uber.org/zap"
)

// The indexer keeps the Elasticsearch streams index in line with the store
// by consuming stream change events.
func main() {
	configPath := flag.String("config", "", "path to config file (default $SUNE_CONFIG or configs/config.yaml)")
	reindex := flag.Bool("reindex", false, "reindex every active stream before consuming")
	flag.Parse()

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if !cfg.Kafka.Enabled || !cfg.Elasticsearch.Enabled {
		logger.Fatal("Indexer needs kafka and elasticsearch enabled",
			zap.Bool("kafka", cfg.Kafka.Enabled),
			zap.Bool("elasticsearch", cfg.Elasticsearch.Enabled),
		)
	}

	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	index := infraES.NewStreamIndex(cfg.Elasticsearch.IndexName(infraES.StreamsIndexKey))
	searchService := service.NewSearchService(repository.NewStreamRepository(database.Get()), index)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *reindex {
		res, err := searchService.SyncAll(ctx)
		if err != nil {
			logger.Fatal("Reindex failed", zap.Error(err))
		}
		logger.Info("Reindex completed", zap.Int("success", res.Success), zap.Int("failed", res.Failed))
	}

	topic := cfg.Kafka.Topic(infraKafka.TopicStreamChanged)
	logger.Info("Indexer started",
		zap.String("topic", topic),
		zap.String("group", cfg.Kafka.GroupID),
		zap.String("index", index.Name()),
	)

	infraKafka.ConsumeStreamChanged(ctx, cfg.Kafka.Brokers, topic, cfg.Kafka.GroupID, searchService.HandleStreamChanged)

	logger.Info("Indexer stopped")
}
