package elasticsearch

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"sune-tv/internal/config"
	"sune-tv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCluster struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	indexed  bool
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	if len(body) > 0 {
		f.bodies[r.URL.Path] = string(body)
	}
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/":
		_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
	case r.Method == http.MethodHead && r.URL.Path == "/streams":
		if f.indexed {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/streams":
		f.indexed = true
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"id":7}},{"_source":{"id":3}}]}}`))
	case r.URL.Path == "/_bulk":
		_, _ = w.Write([]byte(`{"errors":true,"items":[{"index":{"status":201}},{"index":{"status":400}}]}`))
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	case r.Method == http.MethodPut || r.Method == http.MethodPost:
		_, _ = w.Write([]byte(`{"result":"created"}`))
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func setupCluster(t *testing.T) *fakeCluster {
	t.Helper()
	cluster := &fakeCluster{bodies: map[string]string{}}
	srv := httptest.NewServer(cluster)
	t.Cleanup(srv.Close)

	require.NoError(t, Init(&config.ElasticsearchConfig{Hosts: []string{srv.URL}}))
	t.Cleanup(func() { _ = Close() })
	return cluster
}

func TestInitRejectsEmptyHosts(t *testing.T) {
	err := Init(&config.ElasticsearchConfig{Hosts: []string{" "}})
	assert.Error(t, err)
	assert.False(t, Enabled())
}

func TestUninitializedClient(t *testing.T) {
	idx := NewStreamIndex("streams")
	_, err := idx.SearchIDs(context.Background(), "bunny")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, Ping(context.Background()), ErrNotInitialized)
}

func TestPing(t *testing.T) {
	setupCluster(t)
	assert.True(t, Enabled())
	assert.NoError(t, Ping(context.Background()))
}

func TestEnsureStreamsIndex(t *testing.T) {
	cluster := setupCluster(t)
	ctx := context.Background()

	require.NoError(t, EnsureStreamsIndex(ctx, "streams"))
	require.NoError(t, EnsureStreamsIndex(ctx, "streams"))

	creates := 0
	for _, req := range cluster.requests {
		if req == "PUT /streams" {
			creates++
		}
	}
	assert.Equal(t, 1, creates)
	mapping := cluster.bodies["/streams"]
	assert.Contains(t, mapping, `"description"`)
	assert.Contains(t, mapping, `"wildcard": {"type": "wildcard"}`)
	assert.NotContains(t, mapping, "ignore_above")
}

func TestStreamIndex_SearchIDs(t *testing.T) {
	cluster := setupCluster(t)
	idx := NewStreamIndex("streams")

	ids, err := idx.SearchIDs(context.Background(), "Bunny*")
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 3}, ids)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(cluster.bodies["/streams/_search"]), &sent))
	assert.Contains(t, cluster.bodies["/streams/_search"], `"value":"*bunny\\*`)
	assert.EqualValues(t, MaxSearchHits, sent["size"])
}

func TestStreamIndex_SyncAndDelete(t *testing.T) {
	cluster := setupCluster(t)
	idx := NewStreamIndex("streams")
	ctx := context.Background()

	rating := 8.5
	s := &model.Stream{ID: 5, Title: "Sintel", Rating: &rating, Category: model.Category{Name: "Movies"}}
	require.NoError(t, idx.Sync(ctx, s))

	var doc StreamDoc
	require.NoError(t, json.Unmarshal([]byte(cluster.bodies["/streams/_doc/5"]), &doc))
	assert.Equal(t, "Sintel", doc.Title)
	assert.Equal(t, "Movies", doc.CategoryName)

	assert.NoError(t, idx.Delete(ctx, 5), "a missing document is not an error")
}

func TestStreamIndex_BulkSync(t *testing.T) {
	cluster := setupCluster(t)
	idx := NewStreamIndex("streams")

	success, failed, err := idx.BulkSync(context.Background(), []model.Stream{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}})
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Equal(t, 1, failed)

	lines := 0
	scanner := bufio.NewScanner(strings.NewReader(cluster.bodies["/_bulk"]))
	for scanner.Scan() {
		lines++
	}
	assert.Equal(t, 4, lines)

	success, failed, err = idx.BulkSync(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, success+failed)
}

func TestBuildSearchQuery(t *testing.T) {
	q := BuildSearchQuery(`A?b\c`, 10)
	raw, err := json.Marshal(q)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"value":"*a\\?b\\\\c*"`)
	assert.Contains(t, string(raw), `"description.wildcard"`)
	assert.Contains(t, string(raw), `"case_insensitive":true`)
	assert.Contains(t, string(raw), `"is_active":true`)
}
