package statistics

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/urbanserve/backoffice/app/models"
	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/cache"
)

const (
	CacheKeyDashboard = "statistics:dashboard"
	CacheExpiration   = 30 * time.Minute
)

// DashboardData holds the aggregate counts shown on the admin dashboard.
// Deleted listings are excluded from every count; subscription revenue sums
// AmountPaid over active partners only.
type DashboardData struct {
	TotalListings    int64 `json:"total_listings"`
	ActiveListings   int64 `json:"active_listings"`
	PendingListings  int64 `json:"pending_listings"`
	InactiveListings int64 `json:"inactive_listings"`

	TotalPartners    int64 `json:"total_partners"`
	ActivePartners   int64 `json:"active_partners"`
	TechnicianCount  int64 `json:"technician_count"`
	FranchiseCount   int64 `json:"franchise_count"`
	BdaCount         int64 `json:"bda_count"`

	SubscriptionRevenue float64 `json:"subscription_revenue"`

	GeneratedAt time.Time `json:"generated_at"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// GetDashboard returns the dashboard aggregates, from cache when fresh
func GetDashboard(repos *repository.Repositories) (*DashboardData, error) {
	if cached, err := cache.Get(CacheKeyDashboard); err == nil {
		var data DashboardData
		if err := json.Unmarshal([]byte(cached), &data); err == nil {
			go UpdateCacheIfNeeded(repos)
			return &data, nil
		}
	}

	data, err := computeDashboard(repos)
	if err != nil {
		return nil, err
	}
	storeDashboard(data)
	return data, nil
}

// ShouldUpdateCache checks whether the cache should be refreshed
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached aggregates when they are stale
func UpdateCacheIfNeeded(repos *repository.Repositories) {
	if !ShouldUpdateCache() {
		return
	}
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	data, err := computeDashboard(repos)
	if err != nil {
		log.Printf("Failed to refresh dashboard statistics: %v", err)
		return
	}
	storeDashboard(data)
	lastCacheUpdate = time.Now()
}

func storeDashboard(data *DashboardData) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := cache.Set(CacheKeyDashboard, string(raw), CacheExpiration); err != nil {
		log.Printf("Warning: could not cache dashboard statistics: %v", err)
	}
}

func computeDashboard(repos *repository.Repositories) (*DashboardData, error) {
	data := &DashboardData{GeneratedAt: time.Now()}

	var err error
	if data.TotalListings, err = repos.Listing.Count(); err != nil {
		return nil, err
	}
	if data.ActiveListings, err = repos.Listing.CountByOperationalStatus(models.LISTING_STATUS_ACTIVE); err != nil {
		return nil, err
	}
	if data.PendingListings, err = repos.Listing.CountByOperationalStatus(models.LISTING_STATUS_PENDING); err != nil {
		return nil, err
	}
	if data.InactiveListings, err = repos.Listing.CountByOperationalStatus(models.LISTING_STATUS_INACTIVE); err != nil {
		return nil, err
	}

	if data.TotalPartners, err = repos.Partner.Count(); err != nil {
		return nil, err
	}
	if data.ActivePartners, err = repos.Partner.CountByStatus(models.PARTNER_STATUS_ACTIVE); err != nil {
		return nil, err
	}
	if data.TechnicianCount, err = repos.Partner.CountByRole(models.ROLE_TECHNICIAN); err != nil {
		return nil, err
	}
	if data.FranchiseCount, err = repos.Partner.CountByRole(models.ROLE_FRANCHISE); err != nil {
		return nil, err
	}
	if data.BdaCount, err = repos.Partner.CountByRole(models.ROLE_BDA); err != nil {
		return nil, err
	}

	if data.SubscriptionRevenue, err = repos.Partner.SumAmountPaid(models.PARTNER_STATUS_ACTIVE); err != nil {
		return nil, err
	}

	return data, nil
}
