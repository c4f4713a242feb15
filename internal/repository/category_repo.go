package repository

import (
	"context"

	"sune-tv/internal/model"

	"gorm.io/gorm"
)

// CategoryWithCount is a category plus the live number of its active streams.
type CategoryWithCount struct {
	model.Category
	StreamCount int64 `gorm:"column:stream_count"`
}

const categoryWithCountSelect = "categories.*, " +
	"(SELECT COUNT(*) FROM streams WHERE streams.category_id = categories.id AND streams.is_active = ?) AS stream_count"

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) withCount(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Category{}).Select(categoryWithCountSelect, true)
}

// ListActive returns active categories by display order then name, each with
// its active stream count computed in the same query.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	err := r.withCount(ctx).
		Where("categories.is_active = ?", true).
		Order("categories.display_order ASC, categories.name ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug finds a category with its stream count. With activeOnly set,
// inactive categories are reported as gorm.ErrRecordNotFound.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*CategoryWithCount, error) {
	query := r.withCount(ctx).Where("categories.slug = ?", slug)
	if activeOnly {
		query = query.Where("categories.is_active = ?", true)
	}

	var categories []CategoryWithCount
	if err := query.Limit(1).Scan(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &categories[0], nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Exists reports whether another category (not excludeID) already uses
// the given name or slug.
func (r *CategoryRepository) Exists(ctx context.Context, name, slug string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("(name = ? OR slug = ?) AND id <> ?", name, slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update writes the given columns and returns the reloaded category.
func (r *CategoryRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Category, error) {
	result := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the category, its streams and their watch history.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stream_id IN (SELECT id FROM streams WHERE category_id = ?)", id).
			Delete(&model.WatchEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.Stream{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
