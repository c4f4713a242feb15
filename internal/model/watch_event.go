package model

import "time"

// WatchEvent is an append-only record of a device playing a stream.
type WatchEvent struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StreamID      int64     `gorm:"not null;index" json:"stream_id"`
	DeviceID      string    `gorm:"size:255;not null;index:idx_watch_events_device_watched,priority:1" json:"device_id"`
	WatchedAt     time.Time `gorm:"autoCreateTime;index:idx_watch_events_device_watched,priority:2" json:"watched_at"`
	WatchDuration int       `gorm:"not null;default:0" json:"watch_duration"` // seconds
	Completed     bool      `gorm:"not null;default:false" json:"completed"`

	Stream Stream `gorm:"foreignKey:StreamID" json:"stream,omitempty"`
}

func (WatchEvent) TableName() string {
	return "watch_events"
}
