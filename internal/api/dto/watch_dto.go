package dto

import "time"

// WatchEventInfo is a watch event with its stream's title and thumbnail.
type WatchEventInfo struct {
	ID              int64     `json:"id"`
	Stream          int64     `json:"stream"`
	StreamTitle     string    `json:"stream_title"`
	StreamThumbnail string    `json:"stream_thumbnail"`
	DeviceID        string    `json:"device_id"`
	WatchedAt       time.Time `json:"watched_at"`
	WatchDuration   int       `json:"watch_duration"`
	Completed       bool      `json:"completed"`
}

// WatchTrackRequest records one playback.
type WatchTrackRequest struct {
	Stream        int64  `json:"stream" binding:"required"`
	DeviceID      string `json:"device_id" binding:"required,max=255"`
	WatchDuration int    `json:"watch_duration"`
	Completed     bool   `json:"completed"`
}

// WatchHistoryQuery holds the raw filter parameters of the history listing.
type WatchHistoryQuery struct {
	DeviceID  string `form:"device_id"`
	Stream    string `form:"stream"`
	Completed string `form:"completed"`
}

type DeletedCount struct {
	Deleted int64 `json:"deleted"`
}
