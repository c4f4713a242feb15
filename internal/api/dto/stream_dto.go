package dto

import "time"

// StreamListItem is the compact shape used by grids and carousels.
type StreamListItem struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	URL       string   `json:"url"`
	Category  string   `json:"category"`
	Duration  string   `json:"duration"`
	Rating    *float64 `json:"rating"`
	IsLive    bool     `json:"is_live"`
}

// StreamDetail carries every public attribute of a stream.
type StreamDetail struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Banner      string    `json:"banner"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	CategoryID  int64     `json:"category_id"`
	Duration    string    `json:"duration"`
	ReleaseYear *int      `json:"release_year"`
	Rating      *float64  `json:"rating"`
	Director    string    `json:"director"`
	Cast        string    `json:"cast"`
	Language    string    `json:"language"`
	Quality     string    `json:"quality"`
	IsFeatured  bool      `json:"is_featured"`
	IsLive      bool      `json:"is_live"`
	IsActive    bool      `json:"is_active"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StreamListQuery holds the raw filter parameters of the stream listing.
type StreamListQuery struct {
	Category   string `form:"category"`
	Quality    string `form:"quality"`
	IsFeatured string `form:"is_featured"`
	IsLive     string `form:"is_live"`
	Search     string `form:"search"`
	Ordering   string `form:"ordering"`
}

// StreamCreateRequest is the writable attribute set of a stream.
type StreamCreateRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail" binding:"required,max=500"`
	Banner      string   `json:"banner" binding:"omitempty,max=500"`
	URL         string   `json:"url" binding:"required,max=500"`
	Category    int64    `json:"category" binding:"required"`
	Duration    string   `json:"duration" binding:"omitempty,max=50"`
	ReleaseYear *int     `json:"release_year"`
	Rating      *float64 `json:"rating"`
	Director    string   `json:"director" binding:"omitempty,max=255"`
	Cast        string   `json:"cast"`
	Language    *string  `json:"language" binding:"omitempty,max=50"`
	Quality     string   `json:"quality" binding:"omitempty,oneof=SD HD FHD 4K"`
	IsFeatured  bool     `json:"is_featured"`
	IsLive      bool     `json:"is_live"`
}

// StreamUpdateRequest is a partial update; nil fields are left alone.
type StreamUpdateRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail" binding:"omitempty,min=1,max=500"`
	Banner      *string  `json:"banner" binding:"omitempty,max=500"`
	URL         *string  `json:"url" binding:"omitempty,min=1,max=500"`
	Category    *int64   `json:"category"`
	Duration    *string  `json:"duration" binding:"omitempty,max=50"`
	ReleaseYear *int     `json:"release_year"`
	Rating      *float64 `json:"rating"`
	Director    *string  `json:"director" binding:"omitempty,max=255"`
	Cast        *string  `json:"cast"`
	Language    *string  `json:"language" binding:"omitempty,max=50"`
	Quality     *string  `json:"quality" binding:"omitempty,oneof=SD HD FHD 4K"`
	IsFeatured  *bool    `json:"is_featured"`
	IsLive      *bool    `json:"is_live"`
	IsActive    *bool    `json:"is_active"`
}

// CategoryStreams is one group of the by-category listing.
type CategoryStreams struct {
	Category string           `json:"category"`
	Streams  []StreamListItem `json:"streams"`
}

// ViewCount is returned by the manual view increment.
type ViewCount struct {
	ViewCount int64 `json:"view_count"`
}

// BulkRequest selects streams for a bulk admin action.
type BulkRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

type BulkResult struct {
	Action  string `json:"action"`
	Updated int64  `json:"updated"`
}
