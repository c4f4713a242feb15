package repository

import (
	"context"

	"sune-tv/internal/model"

	"gorm.io/gorm"
)

// WatchFilter narrows a watch history listing. Zero values match everything.
type WatchFilter struct {
	DeviceID  string
	StreamID  *int64
	Completed *bool
}

type WatchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) *WatchRepository {
	return &WatchRepository{db: db}
}

// Create inserts the event and loads its stream for the response.
func (r *WatchRepository) Create(ctx context.Context, event *model.WatchEvent) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Stream").Create(event).Error; err != nil {
		return err
	}
	return db.First(&event.Stream, event.StreamID).Error
}

func (r *WatchRepository) GetByID(ctx context.Context, id int64) (*model.WatchEvent, error) {
	var event model.WatchEvent
	if err := r.db.WithContext(ctx).Preload("Stream").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns matching events newest first.
func (r *WatchRepository) List(ctx context.Context, f WatchFilter) ([]model.WatchEvent, error) {
	query := r.db.WithContext(ctx).Model(&model.WatchEvent{}).Preload("Stream")
	if f.DeviceID != "" {
		query = query.Where("device_id = ?", f.DeviceID)
	}
	if f.StreamID != nil {
		query = query.Where("stream_id = ?", *f.StreamID)
	}
	if f.Completed != nil {
		query = query.Where("completed = ?", *f.Completed)
	}

	var events []model.WatchEvent
	err := query.Order("watched_at DESC").Order("id DESC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteByDevice removes a device's whole history and returns the row count.
func (r *WatchRepository) DeleteByDevice(ctx context.Context, deviceID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("device_id = ?", deviceID).Delete(&model.WatchEvent{})
	return result.RowsAffected, result.Error
}
