package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sune-tv/internal/api/dto"
	"sune-tv/internal/api/handler"
	"sune-tv/internal/api/middleware"
	"sune-tv/internal/api/response"
	"sune-tv/internal/api/router"
	"sune-tv/internal/config"
	"sune-tv/internal/model"
	"sune-tv/internal/repository"
	"sune-tv/internal/service"
	"sune-tv/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	streamRepo := repository.NewStreamRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	watchRepo := repository.NewWatchRepository(db)

	streamService := service.NewStreamService(streamRepo, categoryRepo, nil)
	categoryService := service.NewCategoryService(categoryRepo, streamRepo, nil)
	watchService := service.NewWatchService(watchRepo, streamRepo, nil)
	searchService := service.NewSearchService(streamRepo, nil)

	r := router.NewEngine(handler.NewHealthHandler(db, config.AppConfig{Name: "sune-tv", Version: "test", BasePath: "/api"}))
	router.Setup(r, "/api",
		handler.NewCategoryHandler(categoryService, streamService),
		handler.NewStreamHandler(streamService),
		handler.NewWatchHandler(watchService),
		handler.NewSearchHandler(searchService),
	)
	return &testServer{db: db, engine: r}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorInfo {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}

func (s *testServer) seedMovies(t *testing.T) *model.Category {
	t.Helper()
	c := &model.Category{Name: "Movies", Order: 1, IsActive: true}
	require.NoError(t, s.db.Create(c).Error)
	return c
}

func (s *testServer) seedStream(t *testing.T, c *model.Category, title string, featured bool) *model.Stream {
	t.Helper()
	st := &model.Stream{
		Title:      title,
		Thumbnail:  "https://img.example.com/" + title + ".jpg",
		URL:        "https://cdn.example.com/" + title + ".mp4",
		CategoryID: c.ID,
		IsFeatured: featured,
		IsActive:   true,
	}
	require.NoError(t, s.db.Create(st).Error)
	return st
}

func TestFeaturedThenDetailCountsViews(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)
	bunny := s.seedStream(t, movies, "Big Buck Bunny", true)

	w := s.do(t, http.MethodGet, "/api/streams/featured/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var featured []dto.StreamListItem
	decodeData(t, w, &featured)
	require.Len(t, featured, 1)
	assert.Equal(t, "Big Buck Bunny", featured[0].Title)
	assert.Equal(t, "Movies", featured[0].Category)

	for i, path := range []string{
		fmt.Sprintf("/api/streams/%d/", bunny.ID),
		fmt.Sprintf("/api/streams/%d/", bunny.ID),
		fmt.Sprintf("/api/stream/%d/", bunny.ID),
	} {
		w = s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		var detail dto.StreamDetail
		decodeData(t, w, &detail)
		assert.Equal(t, int64(i+1), detail.ViewCount, path)
		assert.Equal(t, movies.ID, detail.CategoryID)
	}

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/streams/%d/increment_view/", bunny.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var vc dto.ViewCount
	decodeData(t, w, &vc)
	assert.Equal(t, int64(4), vc.ViewCount)
}

func TestStreamDetailNotFound(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)
	st := s.seedStream(t, movies, "Sintel", false)

	for _, path := range []string{"/api/streams/9999/", "/api/streams/abc/", "/api/stream/0/"} {
		w := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "NotFound", decodeError(t, w).Type)
	}

	var stored model.Stream
	require.NoError(t, s.db.First(&stored, st.ID).Error)
	assert.Zero(t, stored.ViewCount)
}

func TestTrackThenByDevice(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)
	st := s.seedStream(t, movies, "Big Buck Bunny", true)

	w := s.do(t, http.MethodPost, "/api/watch-history/track/", gin.H{
		"stream":         st.ID,
		"device_id":      "dev-1",
		"watch_duration": 120,
		"completed":      false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tracked dto.WatchEventInfo
	decodeData(t, w, &tracked)
	assert.Equal(t, "Big Buck Bunny", tracked.StreamTitle)

	w = s.do(t, http.MethodGet, "/api/watch-history/by_device/?device_id=dev-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []dto.WatchEventInfo
	decodeData(t, w, &history)
	require.Len(t, history, 1)
	assert.Equal(t, tracked.ID, history[0].ID)
	assert.Equal(t, 120, history[0].WatchDuration)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/watch-history/%d/", tracked.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWatchHistoryValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/watch-history/by_device/", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "device_id", decodeError(t, w).Field)

	w = s.do(t, http.MethodPost, "/api/watch-history/track/", gin.H{"device_id": "dev-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "stream", decodeError(t, w).Field)

	w = s.do(t, http.MethodPost, "/api/watch-history/track/", gin.H{"stream": 42, "device_id": "dev-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "stream", decodeError(t, w).Field)

	w = s.do(t, http.MethodPost, "/api/watch-history/track/", gin.H{"stream": "one", "device_id": "dev-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "stream", decodeError(t, w).Field)
}

func TestSearchRequiresQuery(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)
	s.seedStream(t, movies, "Sintel", false)

	for _, path := range []string{
		"/api/streams/search/",
		"/api/streams/search/?q=",
		"/api/streams/search/?q=%20%20",
		"/api/streams/search/?category=1&ordering=-rating",
	} {
		w := s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		info := decodeError(t, w)
		assert.Equal(t, "q", info.Field)
		assert.Equal(t, "ValidationError", info.Type)
	}

	w := s.do(t, http.MethodGet, "/api/streams/search/?q=sin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result dto.SearchResult
	decodeData(t, w, &result)
	assert.Equal(t, "sin", result.Query)
	assert.Equal(t, 1, result.Count)
}

func TestCreateStreamValidation(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)

	body := func(title string, mutate func(gin.H)) gin.H {
		b := gin.H{
			"title":     title,
			"thumbnail": "https://x/t.jpg",
			"url":       "https://example.com/video.mp4",
			"category":  movies.ID,
		}
		if mutate != nil {
			mutate(b)
		}
		return b
	}

	tests := []struct {
		name   string
		body   gin.H
		status int
		field  string
	}{
		{"ftp url", body("A", func(b gin.H) { b["url"] = "ftp://example.com/video" }), http.StatusBadRequest, "url"},
		{"https url", body("B", nil), http.StatusCreated, ""},
		{"rating too high", body("C", func(b gin.H) { b["rating"] = 10.5 }), http.StatusBadRequest, "rating"},
		{"rating max", body("D", func(b gin.H) { b["rating"] = 10.0 }), http.StatusCreated, ""},
		{"rating zero", body("E", func(b gin.H) { b["rating"] = 0.0 }), http.StatusCreated, ""},
		{"missing title", body("", nil), http.StatusBadRequest, "title"},
		{"bad quality", body("F", func(b gin.H) { b["quality"] = "8K" }), http.StatusBadRequest, "quality"},
		{"duplicate slug", body("B", nil), http.StatusConflict, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/streams/", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.field != "" {
				assert.Equal(t, tt.field, decodeError(t, w).Field)
			}
		})
	}
}

func TestCreateStreamBannerFallback(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)

	w := s.do(t, http.MethodPost, "/api/streams/", gin.H{
		"title":     "Tears of Steel",
		"thumbnail": "https://x/t.jpg",
		"banner":    "",
		"url":       "https://example.com/video.mp4",
		"category":  movies.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var detail dto.StreamDetail
	decodeData(t, w, &detail)
	assert.Equal(t, "https://x/t.jpg", detail.Banner)
	assert.Equal(t, "tears-of-steel", detail.Slug)

	var stored model.Stream
	require.NoError(t, s.db.First(&stored, detail.ID).Error)
	assert.Equal(t, "https://x/t.jpg", stored.Banner)
}

func TestListFiltersAndCategories(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)
	s.seedStream(t, movies, "Sintel", true)
	s.seedStream(t, movies, "Cosmos", false)

	w := s.do(t, http.MethodGet, "/api/streams/?is_featured=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []dto.StreamListItem
	decodeData(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Sintel", items[0].Title)

	w = s.do(t, http.MethodGet, "/api/streams/?is_featured=maybe", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is_featured", decodeError(t, w).Field)

	w = s.do(t, http.MethodGet, "/api/categories/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cats []dto.CategoryInfo
	decodeData(t, w, &cats)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(2), cats[0].StreamCount)

	w = s.do(t, http.MethodGet, "/api/categories/movies/streams/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &items)
	assert.Len(t, items, 2)

	w = s.do(t, http.MethodGet, "/api/categories/series/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/streams/by_category/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var groups []dto.CategoryStreams
	decodeData(t, w, &groups)
	require.Len(t, groups, 1)
	assert.Equal(t, "Movies", groups[0].Category)
}

func TestBulkAndSync(t *testing.T) {
	s := newTestServer(t)
	movies := s.seedMovies(t)
	a := s.seedStream(t, movies, "A", false)

	w := s.do(t, http.MethodPost, "/api/streams/bulk/feature/", gin.H{"ids": []int64{a.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res dto.BulkResult
	decodeData(t, w, &res)
	assert.Equal(t, int64(1), res.Updated)

	w = s.do(t, http.MethodPost, "/api/streams/bulk/explode/", gin.H{"ids": []int64{a.ID}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/streams/bulk/feature/", gin.H{"ids": []int64{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ids", decodeError(t, w).Field)

	w = s.do(t, http.MethodPost, "/api/search/sync/", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "up", health.Components["database"])
	assert.Equal(t, "disabled", health.Components["redis"])
	assert.Equal(t, "disabled", health.Components["elasticsearch"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))

	w = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sune_http_requests_total")
}
