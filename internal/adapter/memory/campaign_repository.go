// Package memory provides an in-process implementation of
// port.CampaignRepository for local runs and tests.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository on maps guarded by
// a mutex. Records are copied in and out so callers never share state with
// the store.
type CampaignRepository struct {
	mu         sync.RWMutex
	stores     map[string]domain.Store
	products   map[string]domain.Product
	campaigns  map[string]domain.Campaign
	seq        map[string]int64 // insertion order, breaks created_at ties
	next       int64
	applicants map[string]int
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		stores:     make(map[string]domain.Store),
		products:   make(map[string]domain.Product),
		campaigns:  make(map[string]domain.Campaign),
		seq:        make(map[string]int64),
		applicants: make(map[string]int),
	}
}

// PutStore adds or replaces a store.
func (r *CampaignRepository) PutStore(s domain.Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[s.ID] = s
}

// PutProduct adds or replaces a product.
func (r *CampaignRepository) PutProduct(p domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// AddApplicants increments the applicant count of a campaign.
func (r *CampaignRepository) AddApplicants(campaignID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applicants[campaignID] += n
}

func (r *CampaignRepository) FindStoreByOwner(_ context.Context, userID string) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *domain.Store
	for _, s := range r.stores {
		if s.OwnerID != userID {
			continue
		}
		if found == nil || s.CreatedAt.Before(found.CreatedAt) {
			cp := s
			found = &cp
		}
	}
	return found, nil
}

func (r *CampaignRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *CampaignRepository) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[c.ID]; ok {
		return errors.New("duplicate campaign id")
	}
	r.next++
	r.seq[c.ID] = r.next
	r.campaigns[c.ID] = clone(*c)
	return nil
}

func (r *CampaignRepository) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	cp := clone(c)
	return &cp, nil
}

func (r *CampaignRepository) ListCampaigns(_ context.Context, storeID string, f port.ListFilter) ([]domain.CampaignSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brand := domain.Brand{ID: storeID}
	if s, ok := r.stores[storeID]; ok {
		brand = s.Brand()
	}

	var out []domain.CampaignSummary
	for _, c := range r.campaigns {
		if c.StoreID != storeID {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if f.Type != nil && c.Type != *f.Type {
			continue
		}
		out = append(out, domain.CampaignSummary{
			Campaign:       clone(c),
			ApplicantCount: r.applicants[c.ID],
			Brand:          brand,
		})
	}
	slices.SortFunc(out, func(a, b domain.CampaignSummary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(r.seq[b.ID] - r.seq[a.ID])
	})

	if !f.Paginated() {
		return out, nil
	}
	start := min(f.Offset(), len(out))
	end := min(start+f.Limit, len(out))
	return out[start:end], nil
}

func (r *CampaignRepository) UpdateCampaign(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.campaigns[c.ID]
	if !ok {
		return port.ErrCampaignMissing
	}
	next := clone(*c)
	next.StoreID = cur.StoreID
	next.Status = cur.Status
	next.CreatedAt = cur.CreatedAt
	r.campaigns[c.ID] = next
	return nil
}

func (r *CampaignRepository) DeleteCampaign(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[id]; !ok {
		return port.ErrCampaignMissing
	}
	delete(r.campaigns, id)
	delete(r.seq, id)
	delete(r.applicants, id)
	return nil
}

func (r *CampaignRepository) SetCampaignStatus(_ context.Context, id string, status domain.CampaignStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return port.ErrCampaignMissing
	}
	c.Status = status
	c.UpdatedAt = at
	r.campaigns[id] = c
	return nil
}

// clone deep-copies the reference fields of a campaign.
func clone(c domain.Campaign) domain.Campaign {
	c.Platforms = slices.Clone(c.Platforms)
	c.Targeting = domain.Targeting{
		AwarenessGoals:  slices.Clone(c.Targeting.AwarenessGoals),
		AdvocacyGoals:   slices.Clone(c.Targeting.AdvocacyGoals),
		ConversionGoals: slices.Clone(c.Targeting.ConversionGoals),
		ContentTypes:    slices.Clone(c.Targeting.ContentTypes),
	}
	if c.DurationDays != nil {
		d := *c.DurationDays
		c.DurationDays = &d
	}
	if c.TargetLocation != nil {
		l := *c.TargetLocation
		c.TargetLocation = &l
	}
	if a, ok := c.TypeData.(domain.AwarenessData); ok {
		a.Hashtags = slices.Clone(a.Hashtags)
		c.TypeData = a
	}
	return c
}
