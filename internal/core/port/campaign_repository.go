package port

import (
	"context"
	"errors"
	"time"

	"brandhub/internal/core/domain"
)

// ErrCampaignMissing is returned by repository writes that match no
// campaign record.
var ErrCampaignMissing = errors.New("campaign record missing")

// CampaignRepository defines the persistence layer for campaigns and the
// store/product records they are checked against. It is an outbound port
// in hexagonal architecture. Each method is a single atomic read or write;
// lookups of missing records return (nil, nil).
type CampaignRepository interface {
	// FindStoreByOwner returns the store owned by the given user.
	FindStoreByOwner(ctx context.Context, userID string) (*domain.Store, error)
	// GetProduct returns a product by id.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// CreateCampaign inserts a new campaign record.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	// GetCampaign returns a campaign by id regardless of its store.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaigns returns the store's campaigns matching the filter,
	// newest first, annotated with applicant count and brand.
	ListCampaigns(ctx context.Context, storeID string, f ListFilter) ([]domain.CampaignSummary, error)
	// UpdateCampaign overwrites the mutable fields of an existing campaign.
	// StoreID, Status and CreatedAt are never written.
	UpdateCampaign(ctx context.Context, c *domain.Campaign) error
	// DeleteCampaign permanently removes a campaign.
	DeleteCampaign(ctx context.Context, id string) error
	// SetCampaignStatus moves a campaign to the given status and sets its
	// UpdatedAt to at.
	SetCampaignStatus(ctx context.Context, id string, status domain.CampaignStatus, at time.Time) error
}

// ListFilter narrows a campaign list. Pagination applies only when both
// Page and Limit are positive.
type ListFilter struct {
	Status *domain.CampaignStatus
	Type   *domain.CampaignType
	Page   int
	Limit  int
}

// Paginated reports whether the filter requests a single page.
func (f ListFilter) Paginated() bool {
	return f.Page > 0 && f.Limit > 0
}

// Offset returns the number of matching records skipped before the page.
func (f ListFilter) Offset() int {
	if !f.Paginated() {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
