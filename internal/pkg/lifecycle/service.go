package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/apperr"
)

// Service owns the listing state machine over the three axes
// (operational status, moderation status, soft-delete flag). Every
// transition is a single conditional UPDATE keyed on its precondition, so
// concurrent transitions on the same listing serialize: the loser sees zero
// affected rows and gets ErrInvalidTransition instead of overwriting.
type Service struct {
	listings repository.ListingRepository
}

// NewService creates a lifecycle service over the given listing repository
func NewService(listings repository.ListingRepository) *Service {
	return &Service{listings: listings}
}

// CreateInput carries the listing data submitted by an admin or a provider
type CreateInput struct {
	Title       string  `json:"title"`
	ShortName   string  `json:"short_name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	Country     string  `json:"country"`
	State       string  `json:"state"`
	City        string  `json:"city"`
	ImageURL    string  `json:"image_url"`
	ProviderID  uint    `json:"provider_id"`
	CreatedBy   string  `json:"created_by"`
}

// Create inserts a new listing in its initial state. Admin-created listings
// start approved and active, provider-created ones pending on both axes.
func (s *Service) Create(in CreateInput) (*models.ServiceListing, error) {
	if in.CreatedBy != models.CREATED_BY_ADMIN && in.CreatedBy != models.CREATED_BY_PROVIDER {
		return nil, apperr.NewValidation("createdBy", "must be admin or provider")
	}

	listing, err := models.NewServiceListing(in.Title, in.Description, in.Category, in.SubCategory, in.Price, in.ProviderID, in.CreatedBy)
	if err != nil {
		return nil, firstFieldError(err)
	}
	listing.ShortName = in.ShortName
	listing.Country = in.Country
	listing.State = in.State
	listing.City = in.City
	listing.ImageURL = in.ImageURL

	if err := s.listings.Create(listing); err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}
	return listing, nil
}

// Get returns a listing by its public UUID
func (s *Service) Get(uuid string) (*models.ServiceListing, error) {
	listing, err := s.listings.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return listing, nil
}

// Approve moves a pending listing to approved. Provider-created listings
// whose operational status was never explicitly overridden are promoted
// from pending to active in the same atomic step.
func (s *Service) Approve(uuid, actor string) (*models.ServiceListing, error) {
	listing, err := s.Get(uuid)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"moderation_status": models.MODERATION_APPROVED,
		"moderated_by":      actor,
		"moderated_at":      now,
	}
	cond := map[string]interface{}{
		"moderation_status": models.MODERATION_PENDING,
		"is_deleted":        false,
	}

	// Auto-promote: only when the listing is provider-created and still
	// operationally pending. The extra condition keeps the promote atomic;
	// if it was overridden concurrently, retry the plain approval.
	if listing.CreatedBy == models.CREATED_BY_PROVIDER && listing.OperationalStatus == models.LISTING_STATUS_PENDING {
		promoteCond := map[string]interface{}{
			"moderation_status":  models.MODERATION_PENDING,
			"operational_status": models.LISTING_STATUS_PENDING,
			"is_deleted":         false,
		}
		promoteUpdates := map[string]interface{}{
			"moderation_status":  models.MODERATION_APPROVED,
			"operational_status": models.LISTING_STATUS_ACTIVE,
			"moderated_by":       actor,
			"moderated_at":       now,
		}
		rows, err := s.listings.UpdateWhere(listing.ID, promoteCond, promoteUpdates)
		if err != nil {
			return nil, fmt.Errorf("approving listing %s: %w", uuid, err)
		}
		if rows > 0 {
			return s.Get(uuid)
		}
	}

	rows, err := s.listings.UpdateWhere(listing.ID, cond, updates)
	if err != nil {
		return nil, fmt.Errorf("approving listing %s: %w", uuid, err)
	}
	if rows == 0 {
		return nil, apperr.ErrInvalidTransition
	}
	return s.Get(uuid)
}

// Reject moves a pending listing to rejected and forces it inactive.
// A non-empty reason is required.
func (s *Service) Reject(uuid, reason, actor string) (*models.ServiceListing, error) {
	if reason == "" {
		return nil, apperr.NewValidation("reason", "rejection reason is required")
	}

	listing, err := s.Get(uuid)
	if err != nil {
		return nil, err
	}

	rows, err := s.listings.UpdateWhere(listing.ID,
		map[string]interface{}{
			"moderation_status": models.MODERATION_PENDING,
			"is_deleted":        false,
		},
		map[string]interface{}{
			"moderation_status":  models.MODERATION_REJECTED,
			"operational_status": models.LISTING_STATUS_INACTIVE,
			"rejection_reason":   reason,
			"moderated_by":       actor,
			"moderated_at":       time.Now(),
		})
	if err != nil {
		return nil, fmt.Errorf("rejecting listing %s: %w", uuid, err)
	}
	if rows == 0 {
		return nil, apperr.ErrInvalidTransition
	}
	return s.Get(uuid)
}

// Activate makes a listing visible to end customers. Rejected and deleted
// listings cannot be activated.
func (s *Service) Activate(uuid, actor string) (*models.ServiceListing, error) {
	return s.setOperationalStatus(uuid, models.LISTING_STATUS_ACTIVE, actor)
}

// Deactivate hides a listing from end customers. Rejected and deleted
// listings cannot be toggled.
func (s *Service) Deactivate(uuid, actor string) (*models.ServiceListing, error) {
	return s.setOperationalStatus(uuid, models.LISTING_STATUS_INACTIVE, actor)
}

func (s *Service) setOperationalStatus(uuid, status, actor string) (*models.ServiceListing, error) {
	listing, err := s.Get(uuid)
	if err != nil {
		return nil, err
	}

	rows, err := s.listings.UpdateWhere(listing.ID,
		map[string]interface{}{
			"is_deleted":        false,
			"moderation_status": []string{models.MODERATION_PENDING, models.MODERATION_APPROVED},
		},
		map[string]interface{}{
			"operational_status": status,
			"status_changed_by":  actor,
			"status_changed_at":  time.Now(),
		})
	if err != nil {
		return nil, fmt.Errorf("setting listing %s to %s: %w", uuid, status, err)
	}
	if rows == 0 {
		return nil, apperr.ErrInvalidTransition
	}
	return s.Get(uuid)
}

// SoftDelete marks a listing deleted. The state is terminal: no transition
// leads out of it, and default list views exclude deleted listings. The
// reason is optional free text.
func (s *Service) SoftDelete(uuid, reason, actor string) (*models.ServiceListing, error) {
	listing, err := s.Get(uuid)
	if err != nil {
		return nil, err
	}

	rows, err := s.listings.UpdateWhere(listing.ID,
		map[string]interface{}{
			"is_deleted": false,
		},
		map[string]interface{}{
			"is_deleted":         true,
			"operational_status": models.LISTING_STATUS_DELETED,
			"deleted_at":         time.Now(),
			"deleted_by":         actor,
			"deleted_reason":     reason,
		})
	if err != nil {
		return nil, fmt.Errorf("deleting listing %s: %w", uuid, err)
	}
	if rows == 0 {
		return nil, apperr.ErrInvalidTransition
	}
	return s.Get(uuid)
}

// List returns one page of listings and the total count under the filter
func (s *Service) List(filter repository.ListingFilter) ([]models.ServiceListing, int64, error) {
	return s.listings.List(filter)
}

// firstFieldError converts the first validator violation into a field-level
// validation error.
func firstFieldError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.NewValidation(strings.ToLower(fe.Field()[:1])+fe.Field()[1:], "failed on "+fe.Tag())
	}
	return apperr.NewValidation("listing", err.Error())
}
