package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"sune-tv/internal/config"
	"sune-tv/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Logical topic keys resolved through config.KafkaConfig.Topic.
const (
	TopicStreamChanged = "stream_changed"
	TopicWatchTracked  = "watch_tracked"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes catalog events.
type Producer struct {
	writer messageWriter
	topics *config.KafkaConfig
}

// NewProducer builds a producer for cfg.Brokers. The writer connects lazily.
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return &Producer{writer: writer, topics: cfg}
}

func newStreamChangedMessage(topic string, event *StreamChangedEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal stream event: %w", err)
	}
	key := event.Action
	if len(event.StreamIDs) == 1 {
		key = "stream-" + strconv.FormatInt(event.StreamIDs[0], 10)
	}
	return kafka.Message{Topic: topic, Key: []byte(key), Value: payload}, nil
}

func newWatchTrackedMessage(topic string, event *WatchTrackedEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal watch event: %w", err)
	}
	return kafka.Message{Topic: topic, Key: []byte(event.DeviceID), Value: payload}, nil
}

// PublishStreamChanged sends event to the stream_changed topic.
func (p *Producer) PublishStreamChanged(ctx context.Context, event *StreamChangedEvent) error {
	topic := p.topics.Topic(TopicStreamChanged)
	msg, err := newStreamChangedMessage(topic, event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send stream event: %w", err)
	}

	logger.Debug("Stream event sent",
		zap.String("action", event.Action),
		zap.Int64s("stream_ids", event.StreamIDs),
		zap.String("topic", topic),
	)
	return nil
}

// PublishWatchTracked sends event to the watch_tracked topic.
func (p *Producer) PublishWatchTracked(ctx context.Context, event *WatchTrackedEvent) error {
	topic := p.topics.Topic(TopicWatchTracked)
	msg, err := newWatchTrackedMessage(topic, event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send watch event: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
