package service

import (
	"context"
	"time"

	infraKafka "sune-tv/internal/infra/kafka"
	"sune-tv/internal/observability"
	"sune-tv/pkg/logger"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// EventPublisher delivers catalog events. *kafka.Producer implements it.
type EventPublisher interface {
	PublishStreamChanged(ctx context.Context, event *infraKafka.StreamChangedEvent) error
	PublishWatchTracked(ctx context.Context, event *infraKafka.WatchTrackedEvent) error
}

// NopPublisher drops every event; used when kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishStreamChanged(context.Context, *infraKafka.StreamChangedEvent) error {
	return nil
}

func (NopPublisher) PublishWatchTracked(context.Context, *infraKafka.WatchTrackedEvent) error {
	return nil
}

// publishContext ignores request cancellation and bounds the send.
func publishContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
}

func publishStreamChanged(ctx context.Context, pub EventPublisher, action string, ids ...int64) {
	if len(ids) == 0 {
		return
	}
	ctx, cancel := publishContext(ctx)
	defer cancel()

	event := &infraKafka.StreamChangedEvent{Action: action, StreamIDs: ids, OccurredAt: time.Now().UTC()}
	if err := pub.PublishStreamChanged(ctx, event); err != nil {
		observability.EventPublishErrors.WithLabelValues(infraKafka.TopicStreamChanged).Inc()
		logger.Error("Publish stream event failed",
			zap.String("action", action),
			zap.Int64s("stream_ids", ids),
			zap.Error(err),
		)
	}
}

func publishWatchTracked(ctx context.Context, pub EventPublisher, event *infraKafka.WatchTrackedEvent) {
	ctx, cancel := publishContext(ctx)
	defer cancel()

	if err := pub.PublishWatchTracked(ctx, event); err != nil {
		observability.EventPublishErrors.WithLabelValues(infraKafka.TopicWatchTracked).Inc()
		logger.Error("Publish watch event failed",
			zap.Int64("watch_event_id", event.ID),
			zap.Error(err),
		)
	}
}
