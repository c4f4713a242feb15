package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"sune-tv/internal/api/dto"
	infraKafka "sune-tv/internal/infra/kafka"
	"sune-tv/internal/model"
	"sune-tv/internal/repository"
	"sune-tv/pkg/logger"
	"sune-tv/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const invalidSlugMessage = `Enter a valid "slug" consisting of letters, numbers, underscores or hyphens.`

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	streamRepo   *repository.StreamRepository
	publisher    EventPublisher
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, streamRepo *repository.StreamRepository, publisher EventPublisher) *CategoryService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &CategoryService{categoryRepo: categoryRepo, streamRepo: streamRepo, publisher: publisher}
}

// List returns active categories in display order with live stream counts.
func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryInfo, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryInfo, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryInfoWithCount(&categories[i]))
	}
	return items, nil
}

// Get looks up an active category by slug.
func (s *CategoryService) Get(ctx context.Context, slug string) (*dto.CategoryInfo, error) {
	return s.get(ctx, slug, true)
}

func (s *CategoryService) get(ctx context.Context, slug string, activeOnly bool) (*dto.CategoryInfo, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug, activeOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	info := toCategoryInfoWithCount(category)
	return &info, nil
}

func (s *CategoryService) ensureUnique(ctx context.Context, name, slug string, excludeID int64) error {
	exists, err := s.categoryRepo.Exists(ctx, name, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrCategoryExists
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryCreateRequest) (*dto.CategoryInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "This field may not be blank.")
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(name)
		if slug == "" {
			return nil, invalid("name", "Name must contain at least one letter or digit.")
		}
	} else if !slugPattern.MatchString(slug) {
		return nil, invalid("slug", invalidSlugMessage)
	}

	if err := s.ensureUnique(ctx, name, slug, 0); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		Order:       req.Order,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		if _, err := s.categoryRepo.Update(ctx, category.ID, map[string]interface{}{"is_active": false}); err != nil {
			return nil, err
		}
		category.IsActive = false
	}

	logger.Info("Category created", zap.Int64("category_id", category.ID), zap.String("slug", category.Slug))
	info := toCategoryInfo(category, 0)
	return &info, nil
}

// Update applies the non-nil fields of req to the category with slug,
// whether or not it is active.
func (s *CategoryService) Update(ctx context.Context, slug string, req *dto.CategoryUpdateRequest) (*dto.CategoryInfo, error) {
	current, err := s.categoryRepo.GetBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	name, newSlug := current.Name, current.Slug
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name", "This field may not be blank.")
		}
		updates["name"] = name
	}
	if req.Slug != nil {
		if !slugPattern.MatchString(*req.Slug) {
			return nil, invalid("slug", invalidSlugMessage)
		}
		newSlug = *req.Slug
		updates["slug"] = newSlug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Order != nil {
		updates["display_order"] = *req.Order
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	if req.Name != nil || req.Slug != nil {
		if err := s.ensureUnique(ctx, name, newSlug, current.ID); err != nil {
			return nil, err
		}
	}

	if _, err := s.categoryRepo.Update(ctx, current.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.get(ctx, newSlug, false)
}

// Delete removes the category with its streams and their watch history.
func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.GetBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	streams, err := s.streamRepo.Find(ctx, repository.StreamQuery{CategoryID: &category.ID})
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(streams))
	for i := range streams {
		ids = append(ids, streams[i].ID)
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	logger.Info("Category deleted",
		zap.Int64("category_id", category.ID),
		zap.Int("streams_removed", len(ids)),
	)
	publishStreamChanged(ctx, s.publisher, infraKafka.ActionDeleted, ids...)
	return nil
}
