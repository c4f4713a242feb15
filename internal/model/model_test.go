package model_test

import (
	"testing"

	"sune-tv/internal/model"
	"sune-tv/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_SlugDerivedFromName(t *testing.T) {
	db := testutil.NewDB(t)

	cat := &model.Category{Name: "Live TV"}
	require.NoError(t, db.Create(cat).Error)

	assert.Equal(t, "live-tv", cat.Slug)
	assert.True(t, cat.IsActive)
}

func TestCategory_ExplicitSlugKept(t *testing.T) {
	db := testutil.NewDB(t)

	cat := &model.Category{Name: "Documentary", Slug: "docs"}
	require.NoError(t, db.Create(cat).Error)

	assert.Equal(t, "docs", cat.Slug)
}

func TestCategory_EmptySlugRejected(t *testing.T) {
	db := testutil.NewDB(t)

	err := db.Create(&model.Category{Name: "???"}).Error
	assert.ErrorIs(t, err, model.ErrEmptySlug)
}

func TestStream_NormalisedOnCreate(t *testing.T) {
	db := testutil.NewDB(t)
	cat := &model.Category{Name: "Movies"}
	require.NoError(t, db.Create(cat).Error)

	stream := &model.Stream{
		Title:      "Big Buck Bunny",
		Thumbnail:  "https://x/t.jpg",
		URL:        "https://example.com/video.mp4",
		CategoryID: cat.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(stream).Error)

	var stored model.Stream
	require.NoError(t, db.First(&stored, stream.ID).Error)
	assert.Equal(t, "big-buck-bunny", stored.Slug)
	assert.Equal(t, "https://x/t.jpg", stored.Banner)
	assert.Equal(t, model.QualityHD, stored.Quality)
	assert.Equal(t, "English", stored.Language)
	assert.Zero(t, stored.ViewCount)
}

func TestStream_ExplicitBannerKept(t *testing.T) {
	db := testutil.NewDB(t)
	cat := &model.Category{Name: "Movies"}
	require.NoError(t, db.Create(cat).Error)

	stream := &model.Stream{
		Title:      "Sintel",
		Thumbnail:  "https://x/t.jpg",
		Banner:     "https://x/b.jpg",
		URL:        "https://example.com/sintel.mp4",
		CategoryID: cat.ID,
	}
	require.NoError(t, db.Create(stream).Error)

	assert.Equal(t, "https://x/b.jpg", stream.Banner)
}

func TestQuality_IsValid(t *testing.T) {
	for _, q := range []model.Quality{model.QualitySD, model.QualityHD, model.QualityFHD, model.Quality4K} {
		assert.True(t, q.IsValid(), q)
	}
	assert.False(t, model.Quality("8K").IsValid())
	assert.False(t, model.Quality("hd").IsValid())
}
