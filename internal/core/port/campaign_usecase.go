package port

import (
	"context"

	"brandhub/internal/core/domain"
)

// CampaignUseCase defines the campaign lifecycle operations. This
// interface represents the primary port into the application domain.
// Every operation takes the authenticated caller explicitly and reports
// failures as *Error values.
type CampaignUseCase interface {
	// Create validates the input and stores a new DRAFT campaign owned by
	// the caller's store.
	Create(ctx context.Context, caller domain.Caller, in CreateCampaignInput) (*domain.Campaign, error)

	// List returns the caller's campaigns, newest first. When the caller
	// owns no store it returns an empty list together with ErrNoStoreFound.
	List(ctx context.Context, caller domain.Caller, f ListFilter) ([]domain.CampaignSummary, error)

	// Get returns a campaign of the caller's store. A campaign of another
	// store yields ErrForbidden, not ErrNotFound.
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Campaign, error)

	// Update applies a partial change to a DRAFT campaign. Type data is
	// merged key by key into the stored payload.
	Update(ctx context.Context, caller domain.Caller, id string, in UpdateCampaignInput) (*domain.Campaign, error)

	// Delete permanently removes a DRAFT campaign.
	Delete(ctx context.Context, caller domain.Caller, id string) error

	// Publish moves a DRAFT campaign to PUBLISHED. The transition is one
	// way.
	Publish(ctx context.Context, caller domain.Caller, id string) (*domain.Campaign, error)
}

// CreateCampaignInput carries the fields of a new campaign. Its JSON form
// is what the create schema validates.
type CreateCampaignInput struct {
	Title          string               `json:"title"`
	Description    *string              `json:"description,omitempty"`
	Budget         float64              `json:"budget"`
	Currency       string               `json:"currency,omitempty"`
	DurationDays   *int                 `json:"duration_days,omitempty"`
	TargetLocation *domain.Location     `json:"target_location,omitempty"`
	Platforms      []domain.Platform    `json:"platforms,omitempty"`
	Targeting      *domain.Targeting    `json:"targeting,omitempty"`
	Type           *domain.CampaignType `json:"type,omitempty"`
	TypeData       map[string]any       `json:"type_data,omitempty"`
}

// UpdateCampaignInput carries a partial change. A nil field leaves the
// stored value unchanged.
type UpdateCampaignInput struct {
	Title          *string              `json:"title,omitempty"`
	Description    *string              `json:"description,omitempty"`
	Budget         *float64             `json:"budget,omitempty"`
	Currency       *string              `json:"currency,omitempty"`
	DurationDays   *int                 `json:"duration_days,omitempty"`
	TargetLocation *domain.Location     `json:"target_location,omitempty"`
	Platforms      *[]domain.Platform   `json:"platforms,omitempty"`
	Targeting      *domain.Targeting    `json:"targeting,omitempty"`
	Type           *domain.CampaignType `json:"type,omitempty"`
	TypeData       map[string]any       `json:"type_data,omitempty"`
}

// CampaignValidator checks inputs against the structural schemas. Each
// method returns the failing fields, or nil when the input is valid.
type CampaignValidator interface {
	ValidateCreate(in CreateCampaignInput) ([]FieldError, error)
	ValidateUpdate(in UpdateCampaignInput) ([]FieldError, error)
	ValidateTypeData(t domain.CampaignType, data map[string]any) ([]FieldError, error)
}
