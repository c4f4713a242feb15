package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	infraKafka "sune-tv/internal/infra/kafka"
	"sune-tv/internal/model"
	"sune-tv/internal/repository"
	"sune-tv/internal/service"
	"sune-tv/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu      sync.Mutex
	streams []infraKafka.StreamChangedEvent
	watches []infraKafka.WatchTrackedEvent
	err     error
}

func (p *recordingPublisher) PublishStreamChanged(_ context.Context, e *infraKafka.StreamChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.streams = append(p.streams, *e)
	return p.err
}

func (p *recordingPublisher) PublishWatchTracked(_ context.Context, e *infraKafka.WatchTrackedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watches = append(p.watches, *e)
	return p.err
}

type fakeIndex struct {
	ids     []int64
	err     error
	synced  []int64
	deleted []int64
	bulk    int
}

func (f *fakeIndex) SearchIDs(context.Context, string) ([]int64, error) {
	return f.ids, f.err
}

func (f *fakeIndex) Sync(_ context.Context, s *model.Stream) error {
	f.synced = append(f.synced, s.ID)
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) BulkSync(_ context.Context, streams []model.Stream) (int, int, error) {
	f.bulk = len(streams)
	return len(streams), 0, nil
}

type fixture struct {
	db         *gorm.DB
	publisher  *recordingPublisher
	streams    *service.StreamService
	categories *service.CategoryService
	watches    *service.WatchService
	streamRepo *repository.StreamRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	pub := &recordingPublisher{}
	streamRepo := repository.NewStreamRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	watchRepo := repository.NewWatchRepository(db)

	return &fixture{
		db:         db,
		publisher:  pub,
		streams:    service.NewStreamService(streamRepo, categoryRepo, pub),
		categories: service.NewCategoryService(categoryRepo, streamRepo, pub),
		watches:    service.NewWatchService(watchRepo, streamRepo, pub),
		streamRepo: streamRepo,
	}
}

func (f *fixture) category(t *testing.T, name string, order int) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Order: order, IsActive: true}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) stream(t *testing.T, c *model.Category, title string, mutate ...func(*model.Stream)) *model.Stream {
	t.Helper()
	s := &model.Stream{
		Title:      title,
		Thumbnail:  "https://img.example.com/t.jpg",
		URL:        "https://cdn.example.com/v.mp4",
		CategoryID: c.ID,
		IsActive:   true,
	}
	for _, m := range mutate {
		m(s)
	}
	deactivate := !s.IsActive
	require.NoError(t, f.db.Create(s).Error)
	if deactivate {
		require.NoError(t, f.db.Model(s).Update("is_active", false).Error)
	}
	return s
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	require.Equal(t, field, verr.Field)
}

func ptr[T any](v T) *T { return &v }
