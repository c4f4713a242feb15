package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"sune-tv/internal/api/dto"
	infraKafka "sune-tv/internal/infra/kafka"
	"sune-tv/internal/model"
	"sune-tv/internal/observability"
	"sune-tv/internal/repository"
	"sune-tv/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const searchTimeout = 10 * time.Second

// StreamSearchIndex is an external full-text index of streams.
// *elasticsearch.StreamIndex implements it.
type StreamSearchIndex interface {
	SearchIDs(ctx context.Context, q string) ([]int64, error)
	Sync(ctx context.Context, s *model.Stream) error
	Delete(ctx context.Context, id int64) error
	BulkSync(ctx context.Context, streams []model.Stream) (success, failed int, err error)
}

type SearchService struct {
	streamRepo *repository.StreamRepository
	index      StreamSearchIndex
}

// NewSearchService searches the store directly when index is nil.
func NewSearchService(streamRepo *repository.StreamRepository, index StreamSearchIndex) *SearchService {
	return &SearchService{streamRepo: streamRepo, index: index}
}

// Search matches q as one case-insensitive substring of title, description,
// cast or director over active streams. The index answers first when
// configured; any index failure falls back to the store.
func (s *SearchService) Search(ctx context.Context, q string) (*dto.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrSearchQueryRequired
	}

	var streams []model.Stream
	var err error
	if s.index != nil {
		streams, err = s.searchFromIndex(ctx, q)
		if err != nil {
			logger.Warn("ES search failed, fallback to DB", zap.String("q", q), zap.Error(err))
		} else {
			observability.RecordSearch("elasticsearch")
		}
	}
	if s.index == nil || err != nil {
		streams, err = s.searchFromDB(ctx, q)
		if err != nil {
			return nil, err
		}
		observability.RecordSearch("db")
	}

	results := toStreamList(streams)
	return &dto.SearchResult{Query: q, Count: len(results), Results: results}, nil
}

func (s *SearchService) searchFromDB(ctx context.Context, q string) ([]model.Stream, error) {
	return s.streamRepo.Find(ctx, repository.StreamQuery{
		ActiveOnly: true,
		Terms:      []string{q},
		Ordering:   repository.DefaultStreamOrdering,
	})
}

// searchFromIndex reloads the index hits from the store, active only, in
// index order.
func (s *SearchService) searchFromIndex(ctx context.Context, q string) ([]model.Stream, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	ids, err := s.index.SearchIDs(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	streams, err := s.streamRepo.GetActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Stream, len(streams))
	for i := range streams {
		byID[streams[i].ID] = &streams[i]
	}
	ordered := make([]model.Stream, 0, len(ids))
	for _, id := range ids {
		if st, ok := byID[id]; ok {
			ordered = append(ordered, *st)
		}
	}
	return ordered, nil
}

// SyncStream brings the index entry of one stream in line with the store.
// Inactive or missing streams are removed from the index.
func (s *SearchService) SyncStream(ctx context.Context, id int64) error {
	if s.index == nil {
		return ErrSearchIndexDisabled
	}
	stream, err := s.streamRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.index.Delete(ctx, id)
		}
		return err
	}
	if !stream.IsActive {
		return s.index.Delete(ctx, id)
	}
	return s.index.Sync(ctx, stream)
}

// HandleStreamChanged applies a stream change event to the index.
func (s *SearchService) HandleStreamChanged(ctx context.Context, event *infraKafka.StreamChangedEvent) error {
	if s.index == nil {
		return ErrSearchIndexDisabled
	}
	var errs []error
	for _, id := range event.StreamIDs {
		var err error
		if event.Action == infraKafka.ActionDeleted {
			err = s.index.Delete(ctx, id)
		} else {
			err = s.SyncStream(ctx, id)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SyncAll reindexes every active stream.
func (s *SearchService) SyncAll(ctx context.Context) (*dto.SyncResult, error) {
	if s.index == nil {
		return nil, ErrSearchIndexDisabled
	}
	streams, err := s.streamRepo.Find(ctx, repository.StreamQuery{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	success, failed, err := s.index.BulkSync(ctx, streams)
	if err != nil {
		return nil, err
	}
	return &dto.SyncResult{Success: success, Failed: failed}, nil
}
