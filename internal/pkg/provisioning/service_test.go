package provisioning

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
	"github.com/urbanserve/backoffice/internal/pkg/apperr"
	"github.com/urbanserve/backoffice/internal/pkg/catalog"
	"github.com/urbanserve/backoffice/internal/pkg/geo"
)

// fakePartnerRepository is an in-memory PartnerRepository
type fakePartnerRepository struct {
	mu       sync.Mutex
	nextID   uint
	partners map[uint]*models.Partner
}

func newFakePartnerRepository() *fakePartnerRepository {
	return &fakePartnerRepository{partners: make(map[uint]*models.Partner)}
}

func (f *fakePartnerRepository) Create(p *models.Partner) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	p.ID = f.nextID
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	cp := *p
	f.partners[p.ID] = &cp
	return nil
}

func (f *fakePartnerRepository) find(match func(*models.Partner) bool) (*models.Partner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.partners {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePartnerRepository) GetByID(id uint) (*models.Partner, error) {
	return f.find(func(p *models.Partner) bool { return p.ID == id })
}

func (f *fakePartnerRepository) GetByUUID(u string) (*models.Partner, error) {
	return f.find(func(p *models.Partner) bool { return p.UUID == u })
}

func (f *fakePartnerRepository) GetByUsername(username string) (*models.Partner, error) {
	return f.find(func(p *models.Partner) bool { return p.Username == username })
}

func (f *fakePartnerRepository) GetByPhone(phone string) (*models.Partner, error) {
	return f.find(func(p *models.Partner) bool { return p.Phone == phone })
}

func (f *fakePartnerRepository) GetByEmail(email string) (*models.Partner, error) {
	return f.find(func(p *models.Partner) bool { return p.Email == email })
}

func (f *fakePartnerRepository) Update(p *models.Partner) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.partners[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	f.partners[p.ID] = &cp
	return nil
}

func (f *fakePartnerRepository) SetStatus(id uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.partners[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePartnerRepository) List(offset, limit int) ([]models.Partner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Partner
	for _, p := range f.partners {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePartnerRepository) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.partners)), nil
}

func (f *fakePartnerRepository) CountByRole(role string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var cnt int64
	for _, p := range f.partners {
		if p.Role == role {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakePartnerRepository) CountByStatus(status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var cnt int64
	for _, p := range f.partners {
		if p.Status == status {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakePartnerRepository) SumAmountPaid(status string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var sum float64
	for _, p := range f.partners {
		if p.Status == status {
			sum += p.AmountPaid
		}
	}
	return sum, nil
}

func (f *fakePartnerRepository) ConsumeBalance(id uint, amount float64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.partners[id]
	if !ok || p.AmountBalance < amount {
		return 0, nil
	}
	p.AmountUsed += amount
	p.AmountBalance -= amount
	return 1, nil
}

// fakePincodeRepository serves pincode records from memory
type fakePincodeRepository struct {
	records []models.PincodeRecord
}

func (f *fakePincodeRepository) Create(r *models.PincodeRecord) error {
	f.records = append(f.records, *r)
	return nil
}

func (f *fakePincodeRepository) GetByCode(code string) (*models.PincodeRecord, error) {
	for i := range f.records {
		if f.records[i].Code == code {
			return &f.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePincodeRepository) GetAll() ([]models.PincodeRecord, error) {
	return f.records, nil
}

// fakePlanRepository serves subscription plans from memory
type fakePlanRepository struct {
	plans []models.SubscriptionPlan
}

func (f *fakePlanRepository) Create(p *models.SubscriptionPlan) error {
	f.plans = append(f.plans, *p)
	return nil
}

func (f *fakePlanRepository) GetByID(id uint) (*models.SubscriptionPlan, error) {
	for i := range f.plans {
		if f.plans[i].ID == id {
			return &f.plans[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlanRepository) GetAll() ([]models.SubscriptionPlan, error) {
	return f.plans, nil
}

func (f *fakePlanRepository) ListActive() ([]models.SubscriptionPlan, error) {
	var active []models.SubscriptionPlan
	for _, p := range f.plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakePlanRepository) Retire(id uint) error {
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans[i].IsActive = false
		}
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *fakePartnerRepository) {
	t.Helper()

	bangalore := models.PincodeRecord{Code: "560001", City: "Bangalore", State: "Karnataka"}
	require.NoError(t, bangalore.SetAreaNames([]string{"MG Road", "Brigade Road"}))
	resolver := geo.NewResolver(&fakePincodeRepository{records: []models.PincodeRecord{bangalore}})
	require.NoError(t, resolver.Load())

	cat := catalog.NewCatalog(&fakePlanRepository{plans: []models.SubscriptionPlan{
		{ID: 1, Name: "Starter", BasePrice: 1000, TaxAmount: 180, FinalPrice: 1180, DurationDays: 365, IsActive: true},
		{ID: 2, Name: "Legacy", BasePrice: 500, TaxAmount: 90, FinalPrice: 590, DurationDays: 180, IsActive: false},
	}})
	require.NoError(t, cat.Load())

	partners := newFakePartnerRepository()
	return NewService(partners, resolver, cat), partners
}

func validRequest() ProvisionRequest {
	return ProvisionRequest{
		Username:     "ravi_kumar",
		Phone:        "9876543210",
		Password:     "s3cret9",
		Email:        "ravi@example.com",
		Role:         models.ROLE_TECHNICIAN,
		BuildingName: "Prestige Towers, 4th Floor",
		Pincode:      "560001",
		AreaName:     "MG Road",
		PlanID:       1,
	}
}

func TestProvisionSeedsWalletFromPlan(t *testing.T) {
	svc, _ := newTestService(t)

	partner, err := svc.Provision(validRequest(), "ops@urbanserve")
	require.NoError(t, err)

	assert.NotEmpty(t, partner.UUID)
	assert.Equal(t, "ravi_kumar", partner.Username)
	assert.Equal(t, models.PARTNER_STATUS_ACTIVE, partner.Status)
	assert.Equal(t, "ops@urbanserve", partner.CreatedBy)

	// city and state are derived, never taken from input
	assert.Equal(t, "Bangalore", partner.City)
	assert.Equal(t, "Karnataka", partner.State)

	assert.Equal(t, 1180.0, partner.AmountPaid)
	assert.Equal(t, 0.0, partner.AmountUsed)
	assert.Equal(t, 1180.0, partner.AmountBalance)

	require.NotNil(t, partner.SubscriptionStart)
	require.NotNil(t, partner.SubscriptionEnd)
	assert.Equal(t, partner.SubscriptionStart.AddDate(0, 0, 365), *partner.SubscriptionEnd)

	// password is stored hashed
	assert.NotEqual(t, "s3cret9", partner.Password)
	assert.True(t, partner.CheckPassword("s3cret9"))
}

func TestProvisionReportsFirstInvalidField(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name      string
		mutate    func(*ProvisionRequest)
		wantField string
	}{
		{"missing username", func(r *ProvisionRequest) { r.Username = "" }, "username"},
		{"short phone", func(r *ProvisionRequest) { r.Phone = "98765" }, "phone"},
		{"non-numeric phone", func(r *ProvisionRequest) { r.Phone = "98765abcde" }, "phone"},
		{"short password", func(r *ProvisionRequest) { r.Password = "abc" }, "password"},
		{"long password", func(r *ProvisionRequest) { r.Password = "longer-than-ten" }, "password"},
		{"bad email", func(r *ProvisionRequest) { r.Email = "not-an-email" }, "email"},
		{"unknown role", func(r *ProvisionRequest) { r.Role = "manager" }, "role"},
		{"missing building", func(r *ProvisionRequest) { r.BuildingName = "" }, "buildingName"},
		{"short pincode", func(r *ProvisionRequest) { r.Pincode = "5600" }, "pincode"},
		{"missing area", func(r *ProvisionRequest) { r.AreaName = "" }, "areaName"},
		{"missing plan", func(r *ProvisionRequest) { r.PlanID = 0 }, "planId"},
		// username is declared before phone, so it is reported first
		{"two bad fields", func(r *ProvisionRequest) { r.Username = ""; r.Phone = "1" }, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Provision(req, "ops")
			ve, ok := apperr.AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestProvisionUnknownPincode(t *testing.T) {
	svc, partners := newTestService(t)

	req := validRequest()
	req.Pincode = "999999"

	_, err := svc.Provision(req, "ops")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "pincode", ve.Field)

	count, _ := partners.Count()
	assert.Zero(t, count, "no partner may be created on a failed request")
}

func TestProvisionAreaNotServedByPincode(t *testing.T) {
	svc, partners := newTestService(t)

	req := validRequest()
	req.AreaName = "Koramangala"

	_, err := svc.Provision(req, "ops")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "areaName", ve.Field)

	count, _ := partners.Count()
	assert.Zero(t, count)
}

func TestProvisionRejectsRetiredPlan(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.PlanID = 2

	_, err := svc.Provision(req, "ops")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "planId", ve.Field)
}

func TestProvisionDuplicateFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Provision(validRequest(), "ops")
	require.NoError(t, err)

	tests := []struct {
		name      string
		mutate    func(*ProvisionRequest)
		wantField string
	}{
		{"same username", func(r *ProvisionRequest) { r.Phone = "9000000001"; r.Email = "other@example.com" }, "username"},
		{"same phone", func(r *ProvisionRequest) { r.Username = "another"; r.Email = "other@example.com" }, "phone"},
		{"same email", func(r *ProvisionRequest) { r.Username = "another"; r.Phone = "9000000001" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Provision(req, "ops")
			de, ok := apperr.AsDuplicate(err)
			require.True(t, ok, "expected a duplicate error, got %v", err)
			assert.Equal(t, tt.wantField, de.Field)
		})
	}
}

func TestProvisionEmailOptional(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.Email = ""

	partner, err := svc.Provision(req, "ops")
	require.NoError(t, err)
	assert.Empty(t, partner.Email)
}

func TestSetStatusToggle(t *testing.T) {
	svc, _ := newTestService(t)

	partner, err := svc.Provision(validRequest(), "ops")
	require.NoError(t, err)

	updated, err := svc.SetStatus(partner.UUID, models.PARTNER_STATUS_INACTIVE)
	require.NoError(t, err)
	assert.Equal(t, models.PARTNER_STATUS_INACTIVE, updated.Status)

	updated, err = svc.SetStatus(partner.UUID, models.PARTNER_STATUS_ACTIVE)
	require.NoError(t, err)
	assert.Equal(t, models.PARTNER_STATUS_ACTIVE, updated.Status)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	svc, _ := newTestService(t)

	partner, err := svc.Provision(validRequest(), "ops")
	require.NoError(t, err)

	_, err = svc.SetStatus(partner.UUID, "suspended")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
}

func TestGetByUUIDUnknownPartner(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByUUID("no-such-uuid")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
