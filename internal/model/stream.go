package model

import (
	"time"

	"sune-tv/pkg/utils"

	"gorm.io/gorm"
)

// Quality is the advertised resolution of a stream.
type Quality string

const (
	QualitySD  Quality = "SD"
	QualityHD  Quality = "HD"
	QualityFHD Quality = "FHD"
	Quality4K  Quality = "4K"
)

// IsValid reports whether q is one of the known quality labels.
func (q Quality) IsValid() bool {
	switch q {
	case QualitySD, QualityHD, QualityFHD, Quality4K:
		return true
	}
	return false
}

// Stream is a playable catalog entry. The media itself is hosted elsewhere;
// URL only points at it.
type Stream struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Slug        string   `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string   `gorm:"type:text" json:"description"`
	Thumbnail   string   `gorm:"size:500;not null" json:"thumbnail"`
	Banner      string   `gorm:"size:500" json:"banner"`
	URL         string   `gorm:"column:url;size:500;not null" json:"url"`
	CategoryID  int64    `gorm:"not null;index:idx_streams_category_created,priority:1" json:"category_id"`
	Duration    string   `gorm:"size:50" json:"duration"`
	ReleaseYear *int     `json:"release_year"`
	Rating      *float64 `gorm:"type:numeric(3,1)" json:"rating"`
	Director    string   `gorm:"size:255" json:"director"`
	Cast        string   `gorm:"type:text" json:"cast"`
	Language    string   `gorm:"size:50;default:'English'" json:"language"`
	Quality     Quality  `gorm:"size:20;not null;default:'HD'" json:"quality"`
	IsFeatured  bool     `gorm:"not null;default:false;index:idx_streams_featured_created,priority:1" json:"is_featured"`
	IsLive      bool     `gorm:"not null;default:false" json:"is_live"`
	IsActive    bool     `gorm:"not null;default:true;index" json:"is_active"`
	ViewCount   int64    `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_streams_category_created,priority:2;index:idx_streams_featured_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Category     Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	WatchHistory []WatchEvent `gorm:"foreignKey:StreamID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Stream) TableName() string {
	return "streams"
}

// BeforeSave derives the slug from the title and falls back to the
// thumbnail when no banner is set. Column-only updates (view counter, bulk
// flags) carry an empty model and are left untouched.
func (s *Stream) BeforeSave(tx *gorm.DB) error {
	if s.Slug == "" && s.Title != "" {
		s.Slug = utils.Slugify(s.Title)
	}
	if s.Banner == "" && s.Thumbnail != "" {
		s.Banner = s.Thumbnail
	}
	return nil
}

func (s *Stream) BeforeCreate(tx *gorm.DB) error {
	if s.Slug == "" {
		return ErrEmptySlug
	}
	return nil
}
