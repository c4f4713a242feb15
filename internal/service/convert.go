package service

import (
	"sune-tv/internal/api/dto"
	"sune-tv/internal/model"
	"sune-tv/internal/repository"
)

func toStreamListItem(s *model.Stream) dto.StreamListItem {
	return dto.StreamListItem{
		ID:        s.ID,
		Title:     s.Title,
		Thumbnail: s.Thumbnail,
		URL:       s.URL,
		Category:  s.Category.Name,
		Duration:  s.Duration,
		Rating:    s.Rating,
		IsLive:    s.IsLive,
	}
}

func toStreamList(streams []model.Stream) []dto.StreamListItem {
	items := make([]dto.StreamListItem, 0, len(streams))
	for i := range streams {
		items = append(items, toStreamListItem(&streams[i]))
	}
	return items
}

func toStreamDetail(s *model.Stream) *dto.StreamDetail {
	return &dto.StreamDetail{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Description: s.Description,
		Thumbnail:   s.Thumbnail,
		Banner:      s.Banner,
		URL:         s.URL,
		Category:    s.Category.Name,
		CategoryID:  s.CategoryID,
		Duration:    s.Duration,
		ReleaseYear: s.ReleaseYear,
		Rating:      s.Rating,
		Director:    s.Director,
		Cast:        s.Cast,
		Language:    s.Language,
		Quality:     string(s.Quality),
		IsFeatured:  s.IsFeatured,
		IsLive:      s.IsLive,
		IsActive:    s.IsActive,
		ViewCount:   s.ViewCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toCategoryInfo(c *model.Category, streamCount int64) dto.CategoryInfo {
	return dto.CategoryInfo{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
		Order:       c.Order,
		IsActive:    c.IsActive,
		StreamCount: streamCount,
		CreatedAt:   c.CreatedAt,
	}
}

func toCategoryInfoWithCount(c *repository.CategoryWithCount) dto.CategoryInfo {
	return toCategoryInfo(&c.Category, c.StreamCount)
}

func toWatchEventInfo(e *model.WatchEvent) dto.WatchEventInfo {
	return dto.WatchEventInfo{
		ID:              e.ID,
		Stream:          e.StreamID,
		StreamTitle:     e.Stream.Title,
		StreamThumbnail: e.Stream.Thumbnail,
		DeviceID:        e.DeviceID,
		WatchedAt:       e.WatchedAt,
		WatchDuration:   e.WatchDuration,
		Completed:       e.Completed,
	}
}
