package dto

import "time"

// CategoryInfo is a category with its live count of active streams.
type CategoryInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        *string   `json:"icon"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	StreamCount int64     `json:"stream_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryCreateRequest creates a category. Slug is derived from Name when empty.
type CategoryCreateRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Slug        string  `json:"slug" binding:"omitempty,max=100"`
	Description string  `json:"description"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
	Order       int     `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryUpdateRequest is a partial update; nil fields are left alone.
type CategoryUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}
