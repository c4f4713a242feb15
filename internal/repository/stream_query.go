package repository

import (
	"strings"

	"sune-tv/internal/model"

	"gorm.io/gorm"
)

// OrderField is one ORDER BY term.
type OrderField struct {
	Column string
	Desc   bool
}

// SortableStreamColumns are the only columns a caller may order streams by.
var SortableStreamColumns = map[string]bool{
	"created_at": true,
	"view_count": true,
	"rating":     true,
	"title":      true,
}

// DefaultStreamOrdering is newest first.
var DefaultStreamOrdering = []OrderField{{Column: "created_at", Desc: true}}

// TrendingOrdering ranks by views only.
var TrendingOrdering = []OrderField{{Column: "view_count", Desc: true}}

// StreamQuery is a predicate over streams assembled from optional criteria.
// Set fields are ANDed; each entry of Terms must match at least one of the
// text columns (title, description, cast, director).
type StreamQuery struct {
	ActiveOnly   bool
	CategoryID   *int64
	CategorySlug string
	Quality      *model.Quality
	IsFeatured   *bool
	IsLive       *bool
	Terms        []string
	Ordering     []OrderField
	Limit        int
}

// cast is a reserved word, so every column is quoted.
var searchColumns = []string{`"streams"."title"`, `"streams"."description"`, `"streams"."cast"`, `"streams"."director"`}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-folded LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func textMatchClause() string {
	parts := make([]string, len(searchColumns))
	for i, col := range searchColumns {
		parts[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (q StreamQuery) filter(db *gorm.DB) *gorm.DB {
	if q.ActiveOnly {
		db = db.Where("streams.is_active = ?", true)
	}
	if q.CategoryID != nil {
		db = db.Where("streams.category_id = ?", *q.CategoryID)
	}
	if q.CategorySlug != "" {
		db = db.Where("streams.category_id IN (SELECT id FROM categories WHERE slug = ?)", q.CategorySlug)
	}
	if q.Quality != nil {
		db = db.Where("streams.quality = ?", string(*q.Quality))
	}
	if q.IsFeatured != nil {
		db = db.Where("streams.is_featured = ?", *q.IsFeatured)
	}
	if q.IsLive != nil {
		db = db.Where("streams.is_live = ?", *q.IsLive)
	}

	clause := textMatchClause()
	for _, term := range q.Terms {
		p := containsPattern(term)
		db = db.Where(clause, p, p, p, p)
	}
	return db
}

func (q StreamQuery) sort(db *gorm.DB) *gorm.DB {
	ordering := q.Ordering
	if len(ordering) == 0 {
		ordering = DefaultStreamOrdering
	}
	for _, o := range ordering {
		if !SortableStreamColumns[o.Column] {
			continue
		}
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		db = db.Order("streams." + o.Column + dir)
	}
	db = db.Order("streams.id DESC")

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}
