package repository

import (
	"context"

	"sune-tv/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreamRepository struct {
	db *gorm.DB
}

func NewStreamRepository(db *gorm.DB) *StreamRepository {
	return &StreamRepository{db: db}
}

// Find runs q and returns the matching streams with their category loaded.
func (r *StreamRepository) Find(ctx context.Context, q StreamQuery) ([]model.Stream, error) {
	var streams []model.Stream
	err := q.sort(q.filter(r.db.WithContext(ctx).Model(&model.Stream{}))).
		Preload("Category").
		Find(&streams).Error
	if err != nil {
		return nil, err
	}
	return streams, nil
}

// Count returns how many streams match q, ignoring its ordering and limit.
func (r *StreamRepository) Count(ctx context.Context, q StreamQuery) (int64, error) {
	var total int64
	err := q.filter(r.db.WithContext(ctx).Model(&model.Stream{})).
		Count(&total).Error
	return total, err
}

// GetByID loads a stream with its category. With activeOnly set, inactive
// streams are reported as gorm.ErrRecordNotFound.
func (r *StreamRepository) GetByID(ctx context.Context, id int64, activeOnly bool) (*model.Stream, error) {
	query := r.db.WithContext(ctx).Preload("Category").Where("streams.id = ?", id)
	if activeOnly {
		query = query.Where("streams.is_active = ?", true)
	}

	var stream model.Stream
	if err := query.First(&stream).Error; err != nil {
		return nil, err
	}
	return &stream, nil
}

// GetActiveByIDs loads active streams for ids; order is unspecified.
func (r *StreamRepository) GetActiveByIDs(ctx context.Context, ids []int64) ([]model.Stream, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var streams []model.Stream
	err := r.db.WithContext(ctx).Preload("Category").
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&streams).Error
	return streams, err
}

// SlugExists reports whether slug is taken by a stream other than excludeID.
func (r *StreamRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Stream{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// FindByTitle returns the first stream with exactly this title.
func (r *StreamRepository) FindByTitle(ctx context.Context, title string) (*model.Stream, error) {
	var stream model.Stream
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&stream).Error; err != nil {
		return nil, err
	}
	return &stream, nil
}

func (r *StreamRepository) Create(ctx context.Context, stream *model.Stream) error {
	return r.db.WithContext(ctx).Create(stream).Error
}

// Update writes the given columns and returns the reloaded stream.
func (r *StreamRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Stream, error) {
	result := r.db.WithContext(ctx).Model(&model.Stream{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id, false)
}

// Delete removes the stream and its watch history in one transaction.
func (r *StreamRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stream_id = ?", id).Delete(&model.WatchEvent{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Stream{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IncrementViewCount adds one view to an active stream in a single UPDATE
// and returns the total that statement produced.
func (r *StreamRepository) IncrementViewCount(ctx context.Context, id int64) (int64, error) {
	var stream model.Stream
	result := r.db.WithContext(ctx).Model(&stream).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "view_count"}}}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return stream.ViewCount, nil
}

// SetFlag sets a boolean column on every stream in ids, active or not.
func (r *StreamRepository) SetFlag(ctx context.Context, ids []int64, column string, value bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&model.Stream{}).
		Where("id IN ?", ids).
		Update(column, value)
	return result.RowsAffected, result.Error
}
