package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sune-tv/internal/api/dto"
	infraKafka "sune-tv/internal/infra/kafka"
	"sune-tv/internal/model"
	"sune-tv/internal/observability"
	"sune-tv/internal/repository"
	"sune-tv/pkg/logger"
	"sune-tv/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	FeaturedLimit   = 5
	ByCategoryLimit = 10
	TrendingLimit   = 20
)

type StreamService struct {
	streamRepo   *repository.StreamRepository
	categoryRepo *repository.CategoryRepository
	publisher    EventPublisher
}

func NewStreamService(streamRepo *repository.StreamRepository, categoryRepo *repository.CategoryRepository, publisher EventPublisher) *StreamService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &StreamService{streamRepo: streamRepo, categoryRepo: categoryRepo, publisher: publisher}
}

func (s *StreamService) find(ctx context.Context, q repository.StreamQuery) ([]dto.StreamListItem, error) {
	streams, err := s.streamRepo.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return toStreamList(streams), nil
}

// BuildListQuery turns raw listing parameters into a query over active streams.
func (s *StreamService) BuildListQuery(ctx context.Context, params *dto.StreamListQuery) (repository.StreamQuery, error) {
	q := repository.StreamQuery{ActiveOnly: true, Ordering: repository.DefaultStreamOrdering}

	if raw := strings.TrimSpace(params.Category); raw != "" {
		if id, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
			if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return q, invalid("category", "Select a valid choice. That choice is not one of the available choices.")
				}
				return q, err
			}
			q.CategoryID = &id
		} else {
			q.CategorySlug = raw
		}
	}

	quality, err := parseQualityParam(params.Quality)
	if err != nil {
		return q, err
	}
	q.Quality = quality

	if q.IsFeatured, err = parseBoolParam("is_featured", params.IsFeatured); err != nil {
		return q, err
	}
	if q.IsLive, err = parseBoolParam("is_live", params.IsLive); err != nil {
		return q, err
	}

	q.Terms = splitSearchTerms(params.Search)
	if ordering := parseOrdering(params.Ordering); len(ordering) > 0 {
		q.Ordering = ordering
	}
	return q, nil
}

// List filters, searches and sorts active streams.
func (s *StreamService) List(ctx context.Context, params *dto.StreamListQuery) ([]dto.StreamListItem, error) {
	q, err := s.BuildListQuery(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, q)
}

func (s *StreamService) Featured(ctx context.Context) ([]dto.StreamListItem, error) {
	featured := true
	return s.find(ctx, repository.StreamQuery{
		ActiveOnly: true,
		IsFeatured: &featured,
		Ordering:   repository.DefaultStreamOrdering,
		Limit:      FeaturedLimit,
	})
}

func (s *StreamService) Live(ctx context.Context) ([]dto.StreamListItem, error) {
	live := true
	return s.find(ctx, repository.StreamQuery{
		ActiveOnly: true,
		IsLive:     &live,
		Ordering:   repository.DefaultStreamOrdering,
	})
}

// Trending ranks active streams by view count alone.
func (s *StreamService) Trending(ctx context.Context) ([]dto.StreamListItem, error) {
	return s.find(ctx, repository.StreamQuery{
		ActiveOnly: true,
		Ordering:   repository.TrendingOrdering,
		Limit:      TrendingLimit,
	})
}

// ByCategory groups up to ByCategoryLimit recent streams under every active
// category, in category display order. Categories with no active streams
// are left out.
func (s *StreamService) ByCategory(ctx context.Context) ([]dto.CategoryStreams, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]dto.CategoryStreams, 0, len(categories))
	for i := range categories {
		if categories[i].StreamCount == 0 {
			continue
		}
		id := categories[i].ID
		items, err := s.find(ctx, repository.StreamQuery{
			ActiveOnly: true,
			CategoryID: &id,
			Ordering:   repository.DefaultStreamOrdering,
			Limit:      ByCategoryLimit,
		})
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		groups = append(groups, dto.CategoryStreams{Category: categories[i].Name, Streams: items})
	}
	return groups, nil
}

// CategoryStreams lists the active streams of an active category.
func (s *StreamService) CategoryStreams(ctx context.Context, slug string) ([]dto.StreamListItem, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.find(ctx, repository.StreamQuery{
		ActiveOnly: true,
		CategoryID: &category.ID,
		Ordering:   repository.DefaultStreamOrdering,
	})
}

// GetDetail returns an active stream and counts the retrieval as a view.
// Unknown and inactive ids are not counted.
func (s *StreamService) GetDetail(ctx context.Context, id int64) (*dto.StreamDetail, error) {
	viewCount, err := s.incrementView(ctx, id, "detail")
	if err != nil {
		return nil, err
	}

	stream, err := s.streamRepo.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStreamNotFound
		}
		return nil, err
	}

	detail := toStreamDetail(stream)
	detail.ViewCount = viewCount
	return detail, nil
}

// IncrementView counts a view without returning the stream.
func (s *StreamService) IncrementView(ctx context.Context, id int64) (*dto.ViewCount, error) {
	viewCount, err := s.incrementView(ctx, id, "manual")
	if err != nil {
		return nil, err
	}
	return &dto.ViewCount{ViewCount: viewCount}, nil
}

func (s *StreamService) incrementView(ctx context.Context, id int64, source string) (int64, error) {
	viewCount, err := s.streamRepo.IncrementViewCount(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStreamNotFound
		}
		return 0, err
	}
	observability.RecordView(source)
	return viewCount, nil
}

func (s *StreamService) requireCategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("category", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, id))
		}
		return err
	}
	return nil
}

func validateStreamCreate(req *dto.StreamCreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return invalid("title", "This field may not be blank.")
	}
	if strings.TrimSpace(req.Thumbnail) == "" {
		return invalid("thumbnail", "This field may not be blank.")
	}
	if err := validateURL("thumbnail", req.Thumbnail); err != nil {
		return err
	}
	if req.Banner != "" {
		if err := validateURL("banner", req.Banner); err != nil {
			return err
		}
	}
	if err := validateStreamURL(req.URL); err != nil {
		return err
	}
	if err := validateRating(req.Rating); err != nil {
		return err
	}
	if req.Quality != "" {
		if err := validateQuality(req.Quality); err != nil {
			return err
		}
	}
	return nil
}

// Create validates req and stores a new active stream.
func (s *StreamService) Create(ctx context.Context, req *dto.StreamCreateRequest) (*dto.StreamDetail, error) {
	if err := validateStreamCreate(req); err != nil {
		return nil, err
	}
	if err := s.requireCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	slug := utils.Slugify(req.Title)
	if slug == "" {
		return nil, invalid("title", "Title must contain at least one letter or digit.")
	}
	taken, err := s.streamRepo.SlugExists(ctx, slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrStreamSlugTaken
	}

	stream := &model.Stream{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Banner:      req.Banner,
		URL:         req.URL,
		CategoryID:  req.Category,
		Duration:    req.Duration,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
		Director:    req.Director,
		Cast:        req.Cast,
		Language:    "English",
		Quality:     model.QualityHD,
		IsFeatured:  req.IsFeatured,
		IsLive:      req.IsLive,
		IsActive:    true,
	}
	if req.Language != nil {
		stream.Language = *req.Language
	}
	if req.Quality != "" {
		stream.Quality = model.Quality(req.Quality)
	}

	if err := s.streamRepo.Create(ctx, stream); err != nil {
		return nil, err
	}

	created, err := s.streamRepo.GetByID(ctx, stream.ID, false)
	if err != nil {
		return nil, err
	}

	logger.Info("Stream created", zap.Int64("stream_id", created.ID), zap.String("slug", created.Slug))
	publishStreamChanged(ctx, s.publisher, infraKafka.ActionCreated, created.ID)
	return toStreamDetail(created), nil
}

// Update applies the non-nil fields of req. Slug, view count and timestamps
// cannot be written. Clearing the banner restores the thumbnail fallback.
func (s *StreamService) Update(ctx context.Context, id int64, req *dto.StreamUpdateRequest) (*dto.StreamDetail, error) {
	existing, err := s.streamRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStreamNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, invalid("title", "This field may not be blank.")
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	thumbnail := existing.Thumbnail
	if req.Thumbnail != nil {
		if err := validateURL("thumbnail", *req.Thumbnail); err != nil {
			return nil, err
		}
		thumbnail = *req.Thumbnail
		updates["thumbnail"] = thumbnail
	}
	if req.Banner != nil {
		banner := *req.Banner
		if banner == "" {
			banner = thumbnail
		} else if err := validateURL("banner", banner); err != nil {
			return nil, err
		}
		updates["banner"] = banner
	}
	if req.URL != nil {
		if err := validateStreamURL(*req.URL); err != nil {
			return nil, err
		}
		updates["url"] = *req.URL
	}
	if req.Category != nil {
		if err := s.requireCategory(ctx, *req.Category); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.Category
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.ReleaseYear != nil {
		updates["release_year"] = *req.ReleaseYear
	}
	if req.Rating != nil {
		if err := validateRating(req.Rating); err != nil {
			return nil, err
		}
		updates["rating"] = *req.Rating
	}
	if req.Director != nil {
		updates["director"] = *req.Director
	}
	if req.Cast != nil {
		updates["cast"] = *req.Cast
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Quality != nil {
		if err := validateQuality(*req.Quality); err != nil {
			return nil, err
		}
		updates["quality"] = *req.Quality
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsLive != nil {
		updates["is_live"] = *req.IsLive
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	stream, err := s.streamRepo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStreamNotFound
		}
		return nil, err
	}

	publishStreamChanged(ctx, s.publisher, infraKafka.ActionUpdated, id)
	return toStreamDetail(stream), nil
}

// Delete removes the stream and its watch history.
func (s *StreamService) Delete(ctx context.Context, id int64) error {
	if err := s.streamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStreamNotFound
		}
		return err
	}

	logger.Info("Stream deleted", zap.Int64("stream_id", id))
	publishStreamChanged(ctx, s.publisher, infraKafka.ActionDeleted, id)
	return nil
}

type bulkAction struct {
	column string
	value  bool
	event  string
}

var bulkActions = map[string]bulkAction{
	"feature":    {column: "is_featured", value: true, event: infraKafka.ActionFeatured},
	"unfeature":  {column: "is_featured", value: false, event: infraKafka.ActionUnfeatured},
	"activate":   {column: "is_active", value: true, event: infraKafka.ActionActivated},
	"deactivate": {column: "is_active", value: false, event: infraKafka.ActionDeactivated},
}

// Bulk flips one flag on every listed stream, active or not.
func (s *StreamService) Bulk(ctx context.Context, action string, ids []int64) (*dto.BulkResult, error) {
	spec, ok := bulkActions[action]
	if !ok {
		return nil, ErrUnknownBulkAction
	}
	if len(ids) == 0 {
		return nil, invalid("ids", "This list may not be empty.")
	}

	updated, err := s.streamRepo.SetFlag(ctx, ids, spec.column, spec.value)
	if err != nil {
		return nil, err
	}

	logger.Info("Bulk stream action applied",
		zap.String("action", action),
		zap.Int("requested", len(ids)),
		zap.Int64("updated", updated),
	)
	publishStreamChanged(ctx, s.publisher, spec.event, ids...)
	return &dto.BulkResult{Action: action, Updated: updated}, nil
}
