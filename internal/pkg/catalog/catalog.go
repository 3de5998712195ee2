package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/urbanserve/backoffice/app/models"
	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/apperr"
	"github.com/urbanserve/backoffice/internal/pkg/cache"
)

const (
	activePlansCacheKey = "catalog:plans:active"
	cacheExpiration     = 30 * time.Minute
)

// Catalog serves subscription plan reads for provisioning and the admin UI.
// The price invariant (final = base + tax) is checked once at load time;
// plans failing it abort the load rather than surfacing bad prices later.
type Catalog struct {
	repo     repository.PlanRepository
	useCache bool

	mu    sync.RWMutex
	plans map[uint]models.SubscriptionPlan
}

// NewCatalog creates a catalog over the given plan repository. Call Load
// before serving reads.
func NewCatalog(repo repository.PlanRepository) *Catalog {
	return &Catalog{
		repo:  repo,
		plans: make(map[uint]models.SubscriptionPlan),
	}
}

// EnableCache turns on redis caching of the active plan list
func (c *Catalog) EnableCache() {
	c.useCache = true
}

// Load reads all plans and verifies the price invariant on each
func (c *Catalog) Load() error {
	plans, err := c.repo.GetAll()
	if err != nil {
		return fmt.Errorf("loading subscription plans: %w", err)
	}

	index := make(map[uint]models.SubscriptionPlan, len(plans))
	for _, p := range plans {
		if !p.PriceConsistent() {
			return fmt.Errorf("plan %q (id %d): final price %.2f != base %.2f + tax %.2f",
				p.Name, p.ID, p.FinalPrice, p.BasePrice, p.TaxAmount)
		}
		index[p.ID] = p
	}

	c.mu.Lock()
	c.plans = index
	c.mu.Unlock()

	if c.useCache {
		if err := cache.Delete(activePlansCacheKey); err != nil {
			log.Printf("Warning: could not invalidate plan cache: %v", err)
		}
	}

	return nil
}

// Reload refreshes the catalog from the repository
func (c *Catalog) Reload() error {
	return c.Load()
}

// GetPlan returns the plan with the given id
func (c *Catalog) GetPlan(id uint) (*models.SubscriptionPlan, error) {
	c.mu.RLock()
	plan, ok := c.plans[id]
	c.mu.RUnlock()

	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &plan, nil
}

// GetActivePlan returns the plan only if it is open for new provisioning
func (c *Catalog) GetActivePlan(id uint) (*models.SubscriptionPlan, error) {
	plan, err := c.GetPlan(id)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperr.ErrNotFound
	}
	return plan, nil
}

// ListActivePlans returns active plans ordered by final price ascending for
// stable display. With caching enabled the serialized list is kept in redis;
// cache misses and cache failures both fall through to the in-memory index.
func (c *Catalog) ListActivePlans() []models.SubscriptionPlan {
	if c.useCache {
		if cached, err := cache.Get(activePlansCacheKey); err == nil {
			var plans []models.SubscriptionPlan
			if err := json.Unmarshal([]byte(cached), &plans); err == nil {
				return plans
			}
		}
	}

	c.mu.RLock()
	plans := make([]models.SubscriptionPlan, 0, len(c.plans))
	for _, p := range c.plans {
		if p.IsActive {
			plans = append(plans, p)
		}
	}
	c.mu.RUnlock()

	sort.Slice(plans, func(i, j int) bool {
		if plans[i].FinalPrice != plans[j].FinalPrice {
			return plans[i].FinalPrice < plans[j].FinalPrice
		}
		return plans[i].ID < plans[j].ID
	})

	if c.useCache {
		if raw, err := json.Marshal(plans); err == nil {
			if err := cache.Set(activePlansCacheKey, string(raw), cacheExpiration); err != nil {
				log.Printf("Warning: could not cache active plans: %v", err)
			}
		}
	}

	return plans
}
