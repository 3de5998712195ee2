package geo

import (
	"fmt"
	"sync"

	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/apperr"
)

// Location is the resolved view of a pincode: its city, state and the set
// of valid sub-areas.
type Location struct {
	Pincode string   `json:"pincode"`
	City    string   `json:"city"`
	State   string   `json:"state"`
	Areas   []string `json:"areas"`
}

// Resolver answers pincode lookups from an in-memory index of the reference
// data. The index is loaded once at startup and replaced wholesale on Reload;
// reference data changes rarely, so lookups never touch the database.
type Resolver struct {
	repo repository.PincodeRepository

	mu    sync.RWMutex
	index map[string]Location
}

// NewResolver creates a resolver over the given reference data repository.
// Call Load before serving lookups.
func NewResolver(repo repository.PincodeRepository) *Resolver {
	return &Resolver{
		repo:  repo,
		index: make(map[string]Location),
	}
}

// Load reads all pincode records into the in-memory index
func (r *Resolver) Load() error {
	records, err := r.repo.GetAll()
	if err != nil {
		return fmt.Errorf("loading pincode reference data: %w", err)
	}

	index := make(map[string]Location, len(records))
	for _, rec := range records {
		areas, err := rec.AreaNames()
		if err != nil {
			return fmt.Errorf("decoding areas for pincode %s: %w", rec.Code, err)
		}
		index[rec.Code] = Location{
			Pincode: rec.Code,
			City:    rec.City,
			State:   rec.State,
			Areas:   areas,
		}
	}

	r.mu.Lock()
	r.index = index
	r.mu.Unlock()

	return nil
}

// Reload refreshes the index from the repository
func (r *Resolver) Reload() error {
	return r.Load()
}

// Resolve maps a pincode to its city, state and valid areas
func (r *Resolver) Resolve(pincode string) (*Location, error) {
	r.mu.RLock()
	loc, ok := r.index[pincode]
	r.mu.RUnlock()

	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &loc, nil
}

// ValidateAddress reports whether area is a valid sub-area of the pincode
func (r *Resolver) ValidateAddress(pincode, area string) bool {
	loc, err := r.Resolve(pincode)
	if err != nil {
		return false
	}
	for _, a := range loc.Areas {
		if a == area {
			return true
		}
	}
	return false
}

// Size returns the number of indexed pincodes
func (r *Resolver) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.index)
}
