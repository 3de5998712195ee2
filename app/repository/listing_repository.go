package repository

import (
	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
)

// Page size limits shared with the HTTP layer so both enforce the same cap.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// listingRepository implements the ListingRepository interface
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository instance
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Create creates a new listing in the database
func (r *listingRepository) Create(listing *models.ServiceListing) error {
	return r.db.Create(listing).Error
}

// GetByID retrieves a listing by its ID
func (r *listingRepository) GetByID(id uint) (*models.ServiceListing, error) {
	var listing models.ServiceListing
	err := r.db.First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetByUUID retrieves a listing by its public UUID
func (r *listingRepository) GetByUUID(uuid string) (*models.ServiceListing, error) {
	var listing models.ServiceListing
	err := r.db.Where("uuid = ?", uuid).First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// scope builds the query scope for the given filter; List and the total
// count share it so pagination never reports a stale count.
func (r *listingRepository) scope(filter ListingFilter) *gorm.DB {
	q := r.db.Model(&models.ServiceListing{})

	if !filter.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if filter.OperationalStatus != "" {
		q = q.Where("operational_status = ?", filter.OperationalStatus)
	}
	if filter.ModerationStatus != "" {
		q = q.Where("moderation_status = ?", filter.ModerationStatus)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SubCategory != "" {
		q = q.Where("sub_category = ?", filter.SubCategory)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		q = q.Where("created_at <= ?", *filter.CreatedTo)
	}

	return q
}

// List returns one page of listings plus the total count under the same filter
func (r *listingRepository) List(filter ListingFilter) ([]models.ServiceListing, int64, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.scope(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []models.ServiceListing
	err := r.scope(filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// UpdateWhere applies updates only while cond still holds on the row
func (r *listingRepository) UpdateWhere(id uint, cond map[string]interface{}, updates map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.ServiceListing{}).
		Where("id = ?", id).
		Where(cond).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Count returns the number of non-deleted listings
func (r *listingRepository) Count() (int64, error) {
	var cnt int64
	err := r.db.Model(&models.ServiceListing{}).Where("is_deleted = ?", false).Count(&cnt).Error
	return cnt, err
}

// CountByOperationalStatus returns the number of non-deleted listings in the given status
func (r *listingRepository) CountByOperationalStatus(status string) (int64, error) {
	var cnt int64
	err := r.db.Model(&models.ServiceListing{}).
		Where("is_deleted = ? AND operational_status = ?", false, status).
		Count(&cnt).Error
	return cnt, err
}
