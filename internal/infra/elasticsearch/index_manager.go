package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sune-tv/internal/config"
	"sune-tv/pkg/logger"

	"go.uber.org/zap"
)

// StreamsIndexKey is the config key of the streams index name.
const StreamsIndexKey = "streams"

// StreamsIndexMapping keeps a wildcard-typed copy of every searchable text
// field. The wildcard type has no ignore_above cutoff.
const StreamsIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"title": {
				"type": "text",
				"fields": {"wildcard": {"type": "wildcard"}}
			},
			"slug": {"type": "keyword"},
			"description": {
				"type": "text",
				"fields": {"wildcard": {"type": "wildcard"}}
			},
			"cast": {
				"type": "text",
				"fields": {"wildcard": {"type": "wildcard"}}
			},
			"director": {
				"type": "text",
				"fields": {"wildcard": {"type": "wildcard"}}
			},
			"category_id": {"type": "long"},
			"category_name": {"type": "keyword"},
			"quality": {"type": "keyword"},
			"language": {"type": "keyword"},
			"is_featured": {"type": "boolean"},
			"is_live": {"type": "boolean"},
			"is_active": {"type": "boolean"},
			"view_count": {"type": "long"},
			"rating": {"type": "float"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
			"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureStreamsIndex creates indexName with the streams mapping when it is missing.
func EnsureStreamsIndex(ctx context.Context, indexName string) error {
	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch streams index already exists", zap.String("index", indexName))
		return nil
	}

	resp, err := IndicesCreate(ctx, indexName, strings.NewReader(StreamsIndexMapping))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch streams index created", zap.String("index", indexName))
	return nil
}

// InitIndexes runs at startup.
func InitIndexes(cfg *config.ElasticsearchConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureStreamsIndex(ctx, cfg.IndexName(StreamsIndexKey))
}
