package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Category groups listings; a nil ParentID marks a top-level category,
// otherwise the row is a sub-category of its parent.
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null;index" json:"name" validate:"required,max=100"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	IconURL  string `gorm:"type:varchar(255)" json:"icon_url" validate:"max=255"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Category) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
