package repository

import (
	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new subscription plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create creates a new subscription plan
func (r *planRepository) Create(plan *models.SubscriptionPlan) error {
	return r.db.Create(plan).Error
}

// GetByID retrieves a plan by its ID
func (r *planRepository) GetByID(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetAll returns every plan, including retired ones
func (r *planRepository) GetAll() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Order("final_price ASC").Find(&plans).Error
	return plans, err
}

// ListActive returns plans open for new provisioning, cheapest first
func (r *planRepository) ListActive() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Where("is_active = ?", true).Order("final_price ASC").Find(&plans).Error
	return plans, err
}

// Retire hides a plan from new provisioning without mutating its prices
func (r *planRepository) Retire(id uint) error {
	return r.db.Model(&models.SubscriptionPlan{}).Where("id = ?", id).Update("is_active", false).Error
}
