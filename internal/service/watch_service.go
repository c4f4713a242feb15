package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sune-tv/internal/api/dto"
	infraKafka "sune-tv/internal/infra/kafka"
	"sune-tv/internal/model"
	"sune-tv/internal/observability"
	"sune-tv/internal/repository"

	"gorm.io/gorm"
)

type WatchService struct {
	watchRepo  *repository.WatchRepository
	streamRepo *repository.StreamRepository
	publisher  EventPublisher
}

func NewWatchService(watchRepo *repository.WatchRepository, streamRepo *repository.StreamRepository, publisher EventPublisher) *WatchService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &WatchService{watchRepo: watchRepo, streamRepo: streamRepo, publisher: publisher}
}

func toWatchEventList(events []model.WatchEvent) []dto.WatchEventInfo {
	items := make([]dto.WatchEventInfo, 0, len(events))
	for i := range events {
		items = append(items, toWatchEventInfo(&events[i]))
	}
	return items
}

// Track records one playback of an existing stream.
func (s *WatchService) Track(ctx context.Context, req *dto.WatchTrackRequest) (*dto.WatchEventInfo, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return nil, invalid("device_id", "This field may not be blank.")
	}
	if req.WatchDuration < 0 {
		return nil, invalid("watch_duration", "Ensure this value is greater than or equal to 0.")
	}
	if _, err := s.streamRepo.GetByID(ctx, req.Stream, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("stream", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, req.Stream))
		}
		return nil, err
	}

	event := &model.WatchEvent{
		StreamID:      req.Stream,
		DeviceID:      deviceID,
		WatchDuration: req.WatchDuration,
		Completed:     req.Completed,
	}
	if err := s.watchRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	observability.RecordWatch(event.Completed)
	publishWatchTracked(ctx, s.publisher, &infraKafka.WatchTrackedEvent{
		ID:            event.ID,
		StreamID:      event.StreamID,
		DeviceID:      event.DeviceID,
		WatchDuration: event.WatchDuration,
		Completed:     event.Completed,
		WatchedAt:     event.WatchedAt,
	})

	info := toWatchEventInfo(event)
	return &info, nil
}

// List filters the whole history, newest first.
func (s *WatchService) List(ctx context.Context, q *dto.WatchHistoryQuery) ([]dto.WatchEventInfo, error) {
	streamID, err := parseIDParam("stream", q.Stream)
	if err != nil {
		return nil, err
	}
	completed, err := parseBoolParam("completed", q.Completed)
	if err != nil {
		return nil, err
	}

	events, err := s.watchRepo.List(ctx, repository.WatchFilter{
		DeviceID:  q.DeviceID,
		StreamID:  streamID,
		Completed: completed,
	})
	if err != nil {
		return nil, err
	}
	return toWatchEventList(events), nil
}

// ByDevice returns one device's history, newest first.
func (s *WatchService) ByDevice(ctx context.Context, deviceID string) ([]dto.WatchEventInfo, error) {
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}
	events, err := s.watchRepo.List(ctx, repository.WatchFilter{DeviceID: deviceID})
	if err != nil {
		return nil, err
	}
	return toWatchEventList(events), nil
}

func (s *WatchService) Get(ctx context.Context, id int64) (*dto.WatchEventInfo, error) {
	event, err := s.watchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchEventNotFound
		}
		return nil, err
	}
	info := toWatchEventInfo(event)
	return &info, nil
}

// DeleteByDevice removes a device's whole history.
func (s *WatchService) DeleteByDevice(ctx context.Context, deviceID string) (*dto.DeletedCount, error) {
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}
	n, err := s.watchRepo.DeleteByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return &dto.DeletedCount{Deleted: n}, nil
}
