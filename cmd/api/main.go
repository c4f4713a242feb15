package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sune-tv/internal/api/handler"
	"sune-tv/internal/api/router"
	"sune-tv/internal/config"
	"sune-tv/internal/infra/database"
	infraES "sune-tv/internal/infra/elasticsearch"
	infraKafka "sune-tv/internal/infra/kafka"
	infraRedis "sune-tv/internal/infra/redis"
	"sune-tv/internal/repository"
	"sune-tv/internal/service"
	"sune-tv/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Sune TV API
// @version 1.0
// @description Video catalog and playback tracking service
// @BasePath /api

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

	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// Redis only backs the readiness report here.
	if cfg.Redis.Enabled {
		if err := infraRedis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis init failed, continuing without it", zap.Error(err))
		} else {
			defer infraRedis.Close()
		}
	}

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		producer := infraKafka.NewProducer(&cfg.Kafka)
		defer producer.Close()
		publisher = producer
	}

	var searchIndex service.StreamSearchIndex
	if cfg.Search.Engine == "elasticsearch" && cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			defer infraES.Close()
			if err := infraES.InitIndexes(&cfg.Elasticsearch); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			searchIndex = infraES.NewStreamIndex(cfg.Elasticsearch.IndexName(infraES.StreamsIndexKey))
			if !cfg.Kafka.Enabled {
				logger.Warn("Kafka is disabled; the search index is only refreshed by POST /search/sync/")
			}
		}
	}

	gin.SetMode(cfg.App.Mode)

	db := database.Get()
	streamRepo := repository.NewStreamRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	watchRepo := repository.NewWatchRepository(db)

	streamService := service.NewStreamService(streamRepo, categoryRepo, publisher)
	categoryService := service.NewCategoryService(categoryRepo, streamRepo, publisher)
	watchService := service.NewWatchService(watchRepo, streamRepo, publisher)
	searchService := service.NewSearchService(streamRepo, searchIndex)

	r := router.NewEngine(handler.NewHealthHandler(db, cfg.App))
	router.Setup(r, cfg.App.BasePath,
		handler.NewCategoryHandler(categoryService, streamService),
		handler.NewStreamHandler(streamService),
		handler.NewWatchHandler(watchService),
		handler.NewSearchHandler(searchService),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.String("search_engine", cfg.Search.Engine),
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.Bool("redis", cfg.Redis.Enabled),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}
