package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// SubscriptionPlan is a catalog entry consulted by provisioning and billing.
// FinalPrice must equal BasePrice + TaxAmount; the catalog verifies this at
// load time. Plans referenced by a live subscription are never mutated in
// place, only retired via IsActive.
type SubscriptionPlan struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`
	Description  string  `gorm:"type:varchar(255)" json:"description" validate:"max=255"`
	BasePrice    float64 `gorm:"type:decimal(10,2);not null" json:"base_price" validate:"gte=0"`
	TaxAmount    float64 `gorm:"type:decimal(10,2);not null" json:"tax_amount" validate:"gte=0"`
	FinalPrice   float64 `gorm:"type:decimal(10,2);not null" json:"final_price" validate:"gte=0"`
	DurationDays int     `gorm:"type:int;not null;default:365" json:"duration_days" validate:"gt=0"`
	IsActive     bool    `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *SubscriptionPlan) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// PriceConsistent reports whether the stored final price matches base + tax
func (p *SubscriptionPlan) PriceConsistent() bool {
	return p.FinalPrice == p.BasePrice+p.TaxAmount
}
