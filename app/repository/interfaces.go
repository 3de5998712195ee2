package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
)

// ListingFilter composes the admin list view filters. Deleted listings are
// excluded unless IncludeDeleted is set; the total count is always computed
// under the same filter as the page itself.
type ListingFilter struct {
	OperationalStatus string
	ModerationStatus  string
	Category          string
	SubCategory       string
	Search            string
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	IncludeDeleted    bool
	Offset            int
	Limit             int
}

// ListingRepository defines the interface for listing-related database operations
type ListingRepository interface {
	Create(listing *models.ServiceListing) error
	GetByID(id uint) (*models.ServiceListing, error)
	GetByUUID(uuid string) (*models.ServiceListing, error)
	List(filter ListingFilter) ([]models.ServiceListing, int64, error)
	// UpdateWhere applies updates to the listing only while cond still holds
	// and reports the number of affected rows. Zero rows means the
	// precondition was lost, typically to a concurrent transition.
	UpdateWhere(id uint, cond map[string]interface{}, updates map[string]interface{}) (int64, error)
	Count() (int64, error)
	CountByOperationalStatus(status string) (int64, error)
}

// PartnerRepository defines the interface for partner-related database operations
type PartnerRepository interface {
	Create(partner *models.Partner) error
	GetByID(id uint) (*models.Partner, error)
	GetByUUID(uuid string) (*models.Partner, error)
	GetByUsername(username string) (*models.Partner, error)
	GetByPhone(phone string) (*models.Partner, error)
	GetByEmail(email string) (*models.Partner, error)
	Update(partner *models.Partner) error
	SetStatus(id uint, status string) error
	List(offset, limit int) ([]models.Partner, error)
	Count() (int64, error)
	CountByRole(role string) (int64, error)
	CountByStatus(status string) (int64, error)
	SumAmountPaid(status string) (float64, error)
	// ConsumeBalance atomically moves amount from balance to used, only when
	// the current balance covers it. Returns the number of affected rows.
	ConsumeBalance(id uint, amount float64) (int64, error)
}

// PlanRepository defines the interface for subscription plan operations
type PlanRepository interface {
	Create(plan *models.SubscriptionPlan) error
	GetByID(id uint) (*models.SubscriptionPlan, error)
	GetAll() ([]models.SubscriptionPlan, error)
	ListActive() ([]models.SubscriptionPlan, error)
	Retire(id uint) error
}

// PincodeRepository defines the interface for pincode reference data
type PincodeRepository interface {
	Create(record *models.PincodeRecord) error
	GetByCode(code string) (*models.PincodeRecord, error)
	GetAll() ([]models.PincodeRecord, error)
}

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	ListActive() ([]models.Category, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Listing  ListingRepository
	Partner  PartnerRepository
	Plan     PlanRepository
	Pincode  PincodeRepository
	Category CategoryRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Listing:  NewListingRepository(db),
		Partner:  NewPartnerRepository(db),
		Plan:     NewPlanRepository(db),
		Pincode:  NewPincodeRepository(db),
		Category: NewCategoryRepository(db),
	}
}
