package service_test

import (
	"context"
	"fmt"
	"testing"

	"sune-tv/internal/api/dto"
	"sune-tv/internal/model"
	"sune-tv/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchService_TrackAndByDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movies := f.category(t, "Movies", 1)
	s := f.stream(t, movies, "Big Buck Bunny")

	info, err := f.watches.Track(ctx, &dto.WatchTrackRequest{
		Stream:        s.ID,
		DeviceID:      "dev-1",
		WatchDuration: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, "Big Buck Bunny", info.StreamTitle)
	assert.Equal(t, s.Thumbnail, info.StreamThumbnail)
	assert.False(t, info.WatchedAt.IsZero())

	require.Len(t, f.publisher.watches, 1)
	assert.Equal(t, info.ID, f.publisher.watches[0].ID)

	history, err := f.watches.ByDevice(ctx, "dev-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, info.ID, history[0].ID)
	assert.Equal(t, 120, history[0].WatchDuration)

	other, err := f.watches.ByDevice(ctx, "dev-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = f.watches.ByDevice(ctx, "")
	assert.ErrorIs(t, err, service.ErrDeviceIDRequired)
}

func TestWatchService_TrackValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movies := f.category(t, "Movies", 1)
	s := f.stream(t, movies, "A")
	inactive := f.stream(t, movies, "B", func(s *model.Stream) { s.IsActive = false })

	_, err := f.watches.Track(ctx, &dto.WatchTrackRequest{Stream: 999, DeviceID: "dev"})
	requireValidation(t, err, "stream")

	_, err = f.watches.Track(ctx, &dto.WatchTrackRequest{Stream: s.ID, DeviceID: "  "})
	requireValidation(t, err, "device_id")

	_, err = f.watches.Track(ctx, &dto.WatchTrackRequest{Stream: s.ID, DeviceID: "dev", WatchDuration: -1})
	requireValidation(t, err, "watch_duration")

	_, err = f.watches.Track(ctx, &dto.WatchTrackRequest{Stream: inactive.ID, DeviceID: "dev"})
	assert.NoError(t, err, "tracking does not depend on the active flag")
}

func TestWatchService_ListGetDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movies := f.category(t, "Movies", 1)
	a := f.stream(t, movies, "A")
	b := f.stream(t, movies, "B")

	var last *dto.WatchEventInfo
	for _, req := range []dto.WatchTrackRequest{
		{Stream: a.ID, DeviceID: "dev-1"},
		{Stream: b.ID, DeviceID: "dev-1", Completed: true},
		{Stream: a.ID, DeviceID: "dev-2"},
	} {
		req := req
		info, err := f.watches.Track(ctx, &req)
		require.NoError(t, err)
		last = info
	}

	all, err := f.watches.List(ctx, &dto.WatchHistoryQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, last.ID, all[0].ID)

	byStream, err := f.watches.List(ctx, &dto.WatchHistoryQuery{Stream: fmt.Sprint(a.ID)})
	require.NoError(t, err)
	assert.Len(t, byStream, 2)

	done, err := f.watches.List(ctx, &dto.WatchHistoryQuery{Completed: "true", DeviceID: "dev-1"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, b.ID, done[0].Stream)

	_, err = f.watches.List(ctx, &dto.WatchHistoryQuery{Stream: "abc"})
	requireValidation(t, err, "stream")

	got, err := f.watches.Get(ctx, last.ID)
	require.NoError(t, err)
	assert.Equal(t, "dev-2", got.DeviceID)
	_, err = f.watches.Get(ctx, 999)
	assert.ErrorIs(t, err, service.ErrWatchEventNotFound)

	deleted, err := f.watches.DeleteByDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted.Deleted)
	_, err = f.watches.DeleteByDevice(ctx, "")
	assert.ErrorIs(t, err, service.ErrDeviceIDRequired)
}
