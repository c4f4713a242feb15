package kafka

import (
	"context"
	"encoding/json"
	"time"

	"sune-tv/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const readRetryDelay = time.Second

// waitRetry sleeps for d and reports false if ctx ends first.
func waitRetry(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// StreamChangedHandler reacts to one decoded stream change.
type StreamChangedHandler func(ctx context.Context, event *StreamChangedEvent) error

// handleStreamChanged decodes msg and runs handler. Undecodable messages are
// logged and skipped.
func handleStreamChanged(ctx context.Context, msg kafka.Message, handler StreamChangedHandler) {
	var event StreamChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error("Failed to unmarshal stream event",
			zap.Error(err),
			zap.ByteString("value", msg.Value),
		)
		return
	}

	logger.Info("Received stream event",
		zap.String("action", event.Action),
		zap.Int64s("stream_ids", event.StreamIDs),
	)

	if err := handler(ctx, &event); err != nil {
		logger.Error("Failed to handle stream event",
			zap.String("action", event.Action),
			zap.Int64s("stream_ids", event.StreamIDs),
			zap.Error(err),
		)
	}
}

// ConsumeStreamChanged reads topic until ctx is cancelled. It blocks, so run
// it in its own goroutine.
func ConsumeStreamChanged(ctx context.Context, brokers []string, topic, groupID string, handler StreamChangedHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	log := logger.With(zap.String("topic", topic), zap.String("group", groupID))

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error("Failed to close kafka consumer", zap.Error(err))
		}
		log.Info("Kafka stream event consumer stopped")
	}()

	log.Info("Kafka stream event consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("Failed to read kafka message", zap.Error(err))
			if !waitRetry(ctx, readRetryDelay) {
				return
			}
			continue
		}
		handleStreamChanged(ctx, msg, handler)
	}
}
