package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// operational status: visibility to end customers
	LISTING_STATUS_PENDING  = "pending"
	LISTING_STATUS_ACTIVE   = "active"
	LISTING_STATUS_INACTIVE = "inactive"
	LISTING_STATUS_DELETED  = "deleted"

	// moderation status: admin review outcome, independent axis
	MODERATION_PENDING  = "pending"
	MODERATION_APPROVED = "approved"
	MODERATION_REJECTED = "rejected"

	// who submitted the listing
	CREATED_BY_ADMIN    = "admin"
	CREATED_BY_PROVIDER = "provider"
)

type ServiceListing struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UUID        string  `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	ShortName   string  `gorm:"type:varchar(100)" json:"short_name" validate:"max=100"`
	Description string  `gorm:"type:text" json:"description" validate:"max=5000"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0"`
	Category    string  `gorm:"type:varchar(100);index" json:"category" validate:"required,max=100"`
	SubCategory string  `gorm:"type:varchar(100);index" json:"sub_category" validate:"max=100"`
	Country     string  `gorm:"type:varchar(100)" json:"country"`
	State       string  `gorm:"type:varchar(100)" json:"state"`
	City        string  `gorm:"type:varchar(100)" json:"city"`
	ImageURL    string  `gorm:"type:varchar(255)" json:"image_url" validate:"max=255"`

	ProviderID uint    `gorm:"index" json:"provider_id"`
	Provider   Partner `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	CreatedBy  string  `gorm:"type:varchar(20);not null" json:"created_by" validate:"oneof=admin provider"`

	OperationalStatus string `gorm:"type:varchar(20);default:'pending';index" json:"operational_status"`
	ModerationStatus  string `gorm:"type:varchar(20);default:'pending';index" json:"moderation_status"`

	// soft-delete marker; authoritative removal flag for every listing query
	IsDeleted     bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt     *time.Time `gorm:"type:timestamp;default:null" json:"deleted_at"`
	DeletedBy     string     `gorm:"type:varchar(150)" json:"deleted_by,omitempty"`
	DeletedReason string     `gorm:"type:varchar(255)" json:"deleted_reason,omitempty"`

	// moderation audit
	ModeratedBy     string     `gorm:"type:varchar(150)" json:"moderated_by,omitempty"`
	ModeratedAt     *time.Time `gorm:"type:timestamp;default:null" json:"moderated_at,omitempty"`
	RejectionReason string     `gorm:"type:varchar(255)" json:"rejection_reason,omitempty"`

	// operational status audit
	StatusChangedBy string     `gorm:"type:varchar(150)" json:"status_changed_by,omitempty"`
	StatusChangedAt *time.Time `gorm:"type:timestamp;default:null" json:"status_changed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *ServiceListing) Validate() error {
	v := validator.New()

	return v.Struct(l)
}

// BeforeCreate generates the public UUID if none is set
func (l *ServiceListing) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	return nil
}

// NewServiceListing builds a listing in its initial lifecycle state. Admin
// submissions skip moderation and go live immediately; provider submissions
// wait in the review queue.
func NewServiceListing(title, description, category, subCategory string, price float64, providerID uint, createdBy string) (*ServiceListing, error) {
	l := &ServiceListing{
		Title:             title,
		Description:       description,
		Category:          category,
		SubCategory:       subCategory,
		Price:             price,
		ProviderID:        providerID,
		CreatedBy:         createdBy,
		OperationalStatus: LISTING_STATUS_PENDING,
		ModerationStatus:  MODERATION_PENDING,
		IsDeleted:         false,
	}
	if createdBy == CREATED_BY_ADMIN {
		l.ModerationStatus = MODERATION_APPROVED
		l.OperationalStatus = LISTING_STATUS_ACTIVE
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// IsModerationPending reports whether the listing still awaits review
func (l *ServiceListing) IsModerationPending() bool {
	return l.ModerationStatus == MODERATION_PENDING
}

// IsVisible reports whether end customers can currently see the listing
func (l *ServiceListing) IsVisible() bool {
	return !l.IsDeleted && l.OperationalStatus == LISTING_STATUS_ACTIVE
}
