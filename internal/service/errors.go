package service

import (
	"errors"
	"fmt"
)

var (
	ErrStreamNotFound      = errors.New("stream not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrWatchEventNotFound  = errors.New("watch event not found")
	ErrSearchQueryRequired = errors.New(`Search query parameter "q" is required`)
	ErrDeviceIDRequired    = errors.New("device_id parameter is required")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrStreamSlugTaken     = errors.New("a stream with this slug already exists")
	ErrCategoryExists      = errors.New("a category with this name or slug already exists")
	ErrUnknownBulkAction   = errors.New("unknown bulk action")
	ErrSearchIndexDisabled = errors.New("search index is not enabled")
)

// ValidationError rejects one input field or query parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
