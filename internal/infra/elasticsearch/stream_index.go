package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sune-tv/internal/model"
	"sune-tv/pkg/logger"

	"go.uber.org/zap"
)

// MaxSearchHits bounds a single search response.
const MaxSearchHits = 1000

// StreamDoc is the indexed form of a stream.
type StreamDoc struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Cast         string   `json:"cast"`
	Director     string   `json:"director"`
	CategoryID   int64    `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Quality      string   `json:"quality"`
	Language     string   `json:"language"`
	IsFeatured   bool     `json:"is_featured"`
	IsLive       bool     `json:"is_live"`
	IsActive     bool     `json:"is_active"`
	ViewCount    int64    `json:"view_count"`
	Rating       *float64 `json:"rating"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func streamToDoc(s *model.Stream) *StreamDoc {
	return &StreamDoc{
		ID:           s.ID,
		Title:        s.Title,
		Slug:         s.Slug,
		Description:  s.Description,
		Cast:         s.Cast,
		Director:     s.Director,
		CategoryID:   s.CategoryID,
		CategoryName: s.Category.Name,
		Quality:      string(s.Quality),
		Language:     s.Language,
		IsFeatured:   s.IsFeatured,
		IsLive:       s.IsLive,
		IsActive:     s.IsActive,
		ViewCount:    s.ViewCount,
		Rating:       s.Rating,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// StreamIndex reads and writes stream documents in one index.
type StreamIndex struct {
	name string
}

func NewStreamIndex(name string) *StreamIndex {
	return &StreamIndex{name: name}
}

func (x *StreamIndex) Name() string {
	return x.name
}

// Sync indexes s, replacing any previous version.
func (x *StreamIndex) Sync(ctx context.Context, s *model.Stream) error {
	body, err := json.Marshal(streamToDoc(s))
	if err != nil {
		return err
	}

	resp, err := Index(ctx, x.name, strconv.FormatInt(s.ID, 10), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Stream synced to ES", zap.Int64("stream_id", s.ID))
	return nil
}

// Delete removes a stream document. A missing document is not an error.
func (x *StreamIndex) Delete(ctx context.Context, id int64) error {
	resp, err := Delete(ctx, x.name, strconv.FormatInt(id, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSync indexes every stream in one bulk request.
func (x *StreamIndex) BulkSync(ctx context.Context, streams []model.Stream) (success, failed int, err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range streams {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": x.name, "_id": strconv.FormatInt(streams[i].ID, 10)},
		}
		if err := enc.Encode(meta); err != nil {
			return 0, len(streams), err
		}
		if err := enc.Encode(streamToDoc(&streams[i])); err != nil {
			return 0, len(streams), err
		}
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := Bulk(ctx, &buf)
	if err != nil {
		return 0, len(streams), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(streams), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(streams), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// searchFields are the wildcard subfields matched by SearchIDs.
var searchFields = []string{"title.wildcard", "description.wildcard", "cast.wildcard", "director.wildcard"}

// BuildSearchQuery matches active streams containing q (case-insensitive) in
// any searchable field, newest first.
func BuildSearchQuery(q string, size int) map[string]interface{} {
	pattern := "*" + wildcardEscaper.Replace(strings.ToLower(q)) + "*"

	should := make([]interface{}, 0, len(searchFields))
	for _, field := range searchFields {
		should = append(should, map[string]interface{}{
			"wildcard": map[string]interface{}{
				field: map[string]interface{}{
					"value":            pattern,
					"case_insensitive": true,
				},
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"is_active": true}},
				},
				"should":               should,
				"minimum_should_match": 1,
			},
		},
		"_source": []string{"id"},
		"size":    size,
		"sort": []interface{}{
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
			map[string]interface{}{"id": map[string]string{"order": "desc"}},
		},
	}
}

// SearchIDs returns the ids of matching streams in ranking order.
func (x *StreamIndex) SearchIDs(ctx context.Context, q string) ([]int64, error) {
	body, err := json.Marshal(BuildSearchQuery(q, MaxSearchHits))
	if err != nil {
		return nil, err
	}

	resp, err := Search(ctx, x.name, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}
