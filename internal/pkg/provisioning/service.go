package provisioning

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/apperr"
	"github.com/urbanserve/backoffice/internal/pkg/catalog"
	"github.com/urbanserve/backoffice/internal/pkg/geo"
)

// ProvisionRequest is the admin-submitted payload for creating a partner
// account. Field order matters: validation fails fast and reports the first
// violated field, in the order declared here. City and state are absent on
// purpose; they are derived from the pincode reference data.
type ProvisionRequest struct {
	Username     string `json:"username" validate:"required,min=1,max=150"`
	Phone        string `json:"phone" validate:"required,len=10,numeric"`
	Password     string `json:"password" validate:"required,min=6,max=10"`
	Email        string `json:"email" validate:"omitempty,email,max=200"`
	Role         string `json:"role" validate:"required,oneof=technician franchise bda"`
	BuildingName string `json:"buildingName" validate:"required,max=255"`
	Pincode      string `json:"pincode" validate:"required,len=6,numeric"`
	AreaName     string `json:"areaName" validate:"required"`
	PlanID       uint   `json:"planId" validate:"required"`
}

// Service provisions partner accounts: it validates the request field by
// field, resolves the address against the pincode reference data, binds the
// partner to an active subscription plan and seeds the wallet from the
// plan's final price. Nothing is written unless every step passes.
type Service struct {
	partners repository.PartnerRepository
	resolver *geo.Resolver
	plans    *catalog.Catalog
	validate *validator.Validate
}

// NewService creates a provisioning service
func NewService(partners repository.PartnerRepository, resolver *geo.Resolver, plans *catalog.Catalog) *Service {
	v := validator.New()
	// report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		partners: partners,
		resolver: resolver,
		plans:    plans,
		validate: v,
	}
}

// Provision creates a partner account for the given request, recording the
// operator as creator. Failures are typed: ValidationError for input
// problems, DuplicateError for uniqueness conflicts.
func (s *Service) Provision(req ProvisionRequest, actor string) (*models.Partner, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	// address resolution: the pincode must be known and the area must be
	// one of its sub-areas
	loc, err := s.resolver.Resolve(req.Pincode)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NewValidation("pincode", "unknown pincode")
		}
		return nil, fmt.Errorf("resolving pincode %s: %w", req.Pincode, err)
	}
	if !s.resolver.ValidateAddress(req.Pincode, req.AreaName) {
		return nil, apperr.NewValidation("areaName", fmt.Sprintf("area %q is not served by pincode %s", req.AreaName, req.Pincode))
	}

	plan, err := s.plans.GetActivePlan(req.PlanID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NewValidation("planId", "unknown or retired plan")
		}
		return nil, fmt.Errorf("looking up plan %d: %w", req.PlanID, err)
	}

	if err := s.checkUniqueness(req); err != nil {
		return nil, err
	}

	hashed, err := models.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	end := now.AddDate(0, 0, plan.DurationDays)
	partner := &models.Partner{
		Username:     req.Username,
		Phone:        req.Phone,
		Email:        req.Email,
		Password:     hashed,
		Role:         req.Role,
		BuildingName: req.BuildingName,
		AreaName:     req.AreaName,
		// city and state come from the resolver, never from the caller
		City:    loc.City,
		State:   loc.State,
		Pincode: req.Pincode,

		PlanID:            plan.ID,
		SubscriptionStart: &now,
		SubscriptionEnd:   &end,
		AmountPaid:        plan.FinalPrice,
		AmountUsed:        0,
		AmountBalance:     plan.FinalPrice,

		Status:    models.PARTNER_STATUS_ACTIVE,
		CreatedBy: actor,
	}

	if err := s.partners.Create(partner); err != nil {
		return nil, fmt.Errorf("creating partner: %w", err)
	}
	return partner, nil
}

// GetByUUID returns a partner by public UUID
func (s *Service) GetByUUID(uuid string) (*models.Partner, error) {
	partner, err := s.partners.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return partner, nil
}

// SetStatus toggles a partner between active and inactive. Partners are
// never deleted, only deactivated.
func (s *Service) SetStatus(uuid, status string) (*models.Partner, error) {
	if status != models.PARTNER_STATUS_ACTIVE && status != models.PARTNER_STATUS_INACTIVE {
		return nil, apperr.NewValidation("status", "must be active or inactive")
	}
	partner, err := s.GetByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if err := s.partners.SetStatus(partner.ID, status); err != nil {
		return nil, fmt.Errorf("setting partner %s status: %w", uuid, err)
	}
	return s.GetByUUID(uuid)
}

// validateRequest returns the first violated field, in declaration order
func (s *Service) validateRequest(req ProvisionRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.NewValidation(fe.Field(), messageFor(fe))
	}
	return err
}

// checkUniqueness pre-checks username, phone and email so conflicts map back
// to a specific field instead of surfacing as a storage-level error.
func (s *Service) checkUniqueness(req ProvisionRequest) error {
	if _, err := s.partners.GetByUsername(req.Username); err == nil {
		return &apperr.DuplicateError{Field: "username"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking username uniqueness: %w", err)
	}

	if _, err := s.partners.GetByPhone(req.Phone); err == nil {
		return &apperr.DuplicateError{Field: "phone"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking phone uniqueness: %w", err)
	}

	if req.Email != "" {
		if _, err := s.partners.GetByEmail(req.Email); err == nil {
			return &apperr.DuplicateError{Field: "email"}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking email uniqueness: %w", err)
		}
	}

	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
