package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_TECHNICIAN = "technician"
	ROLE_FRANCHISE  = "franchise"
	ROLE_BDA        = "bda"

	PARTNER_STATUS_ACTIVE   = "active"
	PARTNER_STATUS_INACTIVE = "inactive"
)

// Partner is a technician, franchise or BDA account provisioned by an
// operator and bound to a subscription plan. City, state and pincode are
// always derived from the pincode reference data, never taken from input.
type Partner struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UUID     string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Username string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username" validate:"required,max=150"`
	Phone    string `gorm:"type:varchar(10);uniqueIndex;not null" json:"phone" validate:"required,len=10,numeric"`
	Email    string `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email,max=200"`
	Password string `gorm:"type:text" json:"-" validate:"required"`
	Role     string `gorm:"type:varchar(20);not null;index" json:"role" validate:"oneof=technician franchise bda"`

	BuildingName string `gorm:"type:varchar(255)" json:"building_name" validate:"required,max=255"`
	AreaName     string `gorm:"type:varchar(150)" json:"area_name"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	State        string `gorm:"type:varchar(100)" json:"state"`
	Pincode      string `gorm:"type:char(6);index" json:"pincode"`

	// subscription binding and wallet accounting; AmountBalance is always
	// AmountPaid - AmountUsed, and AmountUsed never decreases
	PlanID            uint       `gorm:"index" json:"plan_id"`
	SubscriptionStart *time.Time `gorm:"type:timestamp;default:null" json:"subscription_start"`
	SubscriptionEnd   *time.Time `gorm:"type:timestamp;default:null" json:"subscription_end"`
	AmountPaid        float64    `gorm:"type:decimal(10,2);default:0" json:"amount_paid"`
	AmountUsed        float64    `gorm:"type:decimal(10,2);default:0" json:"amount_used"`
	AmountBalance     float64    `gorm:"type:decimal(10,2);default:0" json:"amount_balance"`

	Status    string    `gorm:"type:varchar(20);default:'active'" json:"status" validate:"oneof=active inactive"`
	CreatedBy string    `gorm:"type:varchar(150)" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Partner) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate generates the public UUID if none is set
func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// IsActive reports whether the partner status is active
func (p *Partner) IsActive() bool {
	return p.Status == PARTNER_STATUS_ACTIVE
}

// CheckPassword verifies if the provided password matches the stored hash
func (p *Partner) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))

	return err == nil
}

// SetPassword hashes and sets a new password for the partner
func (p *Partner) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}
