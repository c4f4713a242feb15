package model

import (
	"errors"
	"time"

	"sune-tv/pkg/utils"

	"gorm.io/gorm"
)

// ErrEmptySlug is returned when no slug can be derived for a row being created.
var ErrEmptySlug = errors.New("slug must not be empty")

// Category groups streams (Movies, Series, Documentary, Live TV, ...).
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        *string   `gorm:"size:255" json:"icon"`
	Order       int       `gorm:"column:display_order;not null;default:0;index" json:"order"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Streams []Stream `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"streams,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeSave derives the slug from the name when it was not supplied.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" && c.Name != "" {
		c.Slug = utils.Slugify(c.Name)
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		return ErrEmptySlug
	}
	return nil
}
