package repository

import (
	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
)

// pincodeRepository implements the PincodeRepository interface
type pincodeRepository struct {
	db *gorm.DB
}

// NewPincodeRepository creates a new pincode repository instance
func NewPincodeRepository(db *gorm.DB) PincodeRepository {
	return &pincodeRepository{db: db}
}

// Create creates a new pincode record
func (r *pincodeRepository) Create(record *models.PincodeRecord) error {
	return r.db.Create(record).Error
}

// GetByCode retrieves a pincode record by its 6-digit code
func (r *pincodeRepository) GetByCode(code string) (*models.PincodeRecord, error) {
	var record models.PincodeRecord
	err := r.db.Where("code = ?", code).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetAll returns every pincode record for the resolver's in-memory index
func (r *pincodeRepository) GetAll() ([]models.PincodeRecord, error) {
	var records []models.PincodeRecord
	err := r.db.Find(&records).Error
	return records, err
}
