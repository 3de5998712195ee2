package repository

import (
	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
)

// partnerRepository implements the PartnerRepository interface
type partnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository creates a new partner repository instance
func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

// Create creates a new partner in the database
func (r *partnerRepository) Create(partner *models.Partner) error {
	return r.db.Create(partner).Error
}

// GetByID retrieves a partner by their ID
func (r *partnerRepository) GetByID(id uint) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.First(&partner, id).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// GetByUUID retrieves a partner by their public UUID
func (r *partnerRepository) GetByUUID(uuid string) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.Where("uuid = ?", uuid).First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// GetByUsername retrieves a partner by their unique username
func (r *partnerRepository) GetByUsername(username string) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.Where("username = ?", username).First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// GetByPhone retrieves a partner by their unique phone number
func (r *partnerRepository) GetByPhone(phone string) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.Where("phone = ?", phone).First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// GetByEmail retrieves a partner by their email address
func (r *partnerRepository) GetByEmail(email string) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.Where("email = ?", email).First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Update updates an existing partner in the database
func (r *partnerRepository) Update(partner *models.Partner) error {
	return r.db.Save(partner).Error
}

// SetStatus updates the partner status
func (r *partnerRepository) SetStatus(id uint, status string) error {
	return r.db.Model(&models.Partner{}).Where("id = ?", id).Update("status", status).Error
}

// List returns partners with pagination
func (r *partnerRepository) List(offset, limit int) ([]models.Partner, error) {
	var partners []models.Partner
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&partners).Error
	return partners, err
}

// Count returns the total number of partners
func (r *partnerRepository) Count() (int64, error) {
	var cnt int64
	err := r.db.Model(&models.Partner{}).Count(&cnt).Error
	return cnt, err
}

// CountByRole returns the number of partners with the given role
func (r *partnerRepository) CountByRole(role string) (int64, error) {
	var cnt int64
	err := r.db.Model(&models.Partner{}).Where("role = ?", role).Count(&cnt).Error
	return cnt, err
}

// CountByStatus returns the number of partners in the given status
func (r *partnerRepository) CountByStatus(status string) (int64, error) {
	var cnt int64
	err := r.db.Model(&models.Partner{}).Where("status = ?", status).Count(&cnt).Error
	return cnt, err
}

// SumAmountPaid returns the total subscription revenue over partners in the given status
func (r *partnerRepository) SumAmountPaid(status string) (float64, error) {
	var sum float64
	err := r.db.Model(&models.Partner{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&sum).Error
	return sum, err
}

// ConsumeBalance moves amount from balance to used in a single conditional
// UPDATE; the WHERE clause on amount_balance makes overdraws lose atomically.
func (r *partnerRepository) ConsumeBalance(id uint, amount float64) (int64, error) {
	res := r.db.Model(&models.Partner{}).
		Where("id = ? AND amount_balance >= ?", id, amount).
		Updates(map[string]interface{}{
			"amount_used":    gorm.Expr("amount_used + ?", amount),
			"amount_balance": gorm.Expr("amount_balance - ?", amount),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
