package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

// DefaultCurrency is applied when a campaign is created without one.
const DefaultCurrency = "USD"

var tracer = otel.Tracer("brandhub/internal/adapter/usecase")

// CampaignUseCase implements the campaign lifecycle: DRAFT campaigns are
// created, edited and deleted by the owning store and published exactly
// once. It orchestrates the repository, the schema validator and the view
// invalidator to implement port.CampaignUseCase.
type CampaignUseCase struct {
	repo      port.CampaignRepository
	validator port.CampaignValidator
	views     port.ViewInvalidator

	now   func() time.Time
	newID func() string
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// NewCampaignUseCase creates a new usecase with the provided collaborators.
func NewCampaignUseCase(repo port.CampaignRepository, validator port.CampaignValidator, views port.ViewInvalidator) *CampaignUseCase {
	return &CampaignUseCase{
		repo:      repo,
		validator: validator,
		views:     views,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Create validates the input and stores a DRAFT campaign for the caller's
// store. When a type and type data are both given the payload is checked
// against the type schema, and a referenced product must belong to the
// same store.
func (u *CampaignUseCase) Create(ctx context.Context, caller domain.Caller, in port.CreateCampaignInput) (_ *domain.Campaign, err error) {
	ctx, span := tracer.Start(ctx, "campaign.Create")
	defer func() { endSpan(span, err) }()

	store, err := u.callerStore(ctx, caller)
	if err != nil {
		return nil, err
	}
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if err = u.checkFields(u.validator.ValidateCreate(in)); err != nil {
		return nil, err
	}

	var (
		ctype domain.CampaignType
		data  domain.TypeData
	)
	if in.Type != nil {
		ctype = *in.Type
	}
	if in.TypeData != nil {
		if ctype == "" {
			return nil, invalidField("type", "type is required when type_data is given")
		}
		if data, err = u.resolveTypeData(ctx, store, ctype, in.TypeData); err != nil {
			return nil, err
		}
	}

	now := u.timestamp()
	c := &domain.Campaign{
		ID:             u.newID(),
		StoreID:        store.ID,
		Title:          in.Title,
		Budget:         in.Budget,
		Currency:       in.Currency,
		DurationDays:   in.DurationDays,
		TargetLocation: in.TargetLocation,
		Platforms:      in.Platforms,
		Type:           ctype,
		TypeData:       data,
		Status:         domain.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if c.Platforms == nil {
		c.Platforms = []domain.Platform{}
	}
	if in.Targeting != nil {
		c.Targeting = *in.Targeting
	}
	c.Targeting = c.Targeting.Normalize()

	if err = u.repo.CreateCampaign(ctx, c); err != nil {
		return nil, port.Unexpected("Failed to create campaign", err)
	}
	span.SetAttributes(attribute.String("campaign.id", c.ID))
	u.views.Invalidate(ctx, port.CampaignsPath)
	return c, nil
}

// List returns the caller's campaigns matching f, newest first. A caller
// without a store gets an empty list and ErrNoStoreFound.
func (u *CampaignUseCase) List(ctx context.Context, caller domain.Caller, f port.ListFilter) (_ []domain.CampaignSummary, err error) {
	ctx, span := tracer.Start(ctx, "campaign.List")
	defer func() { endSpan(span, err) }()

	store, err := u.callerStore(ctx, caller)
	if errors.Is(err, port.ErrNoStoreFound) {
		return []domain.CampaignSummary{}, err
	}
	if err != nil {
		return nil, err
	}

	var invalid []port.FieldError
	if f.Status != nil && !f.Status.Valid() {
		invalid = append(invalid, port.FieldError{Field: "status", Message: "unknown campaign status"})
	}
	if f.Type != nil && !f.Type.Valid() {
		invalid = append(invalid, port.FieldError{Field: "type", Message: "unknown campaign type"})
	}
	if f.Page < 0 {
		invalid = append(invalid, port.FieldError{Field: "page", Message: "must be positive"})
	}
	if f.Limit < 0 {
		invalid = append(invalid, port.FieldError{Field: "limit", Message: "must be positive"})
	}
	if len(invalid) > 0 {
		return nil, port.NewError(port.KindValidationFailed, port.ErrValidation.Message, invalid...)
	}

	list, err := u.repo.ListCampaigns(ctx, store.ID, f)
	if err != nil {
		return nil, port.Unexpected("Failed to fetch campaigns", err)
	}
	if list == nil {
		list = []domain.CampaignSummary{}
	}
	return list, nil
}

// Get returns one campaign of the caller's store.
func (u *CampaignUseCase) Get(ctx context.Context, caller domain.Caller, id string) (_ *domain.Campaign, err error) {
	ctx, span := tracer.Start(ctx, "campaign.Get", trace.WithAttributes(attribute.String("campaign.id", id)))
	defer func() { endSpan(span, err) }()

	_, c, err := u.loadOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies a partial change to a DRAFT campaign. Fields left nil in
// the input keep their stored value. Type data is merged key by key into
// the stored payload when the type is unchanged; a new type starts from an
// empty payload.
func (u *CampaignUseCase) Update(ctx context.Context, caller domain.Caller, id string, in port.UpdateCampaignInput) (_ *domain.Campaign, err error) {
	ctx, span := tracer.Start(ctx, "campaign.Update", trace.WithAttributes(attribute.String("campaign.id", id)))
	defer func() { endSpan(span, err) }()

	store, c, err := u.loadOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !c.Status.Editable() {
		return nil, port.NewError(port.KindInvalidState, "Only draft campaigns can be edited")
	}
	if err = u.checkFields(u.validator.ValidateUpdate(in)); err != nil {
		return nil, err
	}

	ctype := c.Type
	if in.Type != nil {
		ctype = *in.Type
	}
	switch {
	case in.TypeData != nil:
		if ctype == "" {
			return nil, invalidField("type", "type is required when type_data is given")
		}
		base := map[string]any{}
		if ctype == c.Type {
			if base, err = domain.TypeDataFields(c.TypeData); err != nil {
				return nil, port.Unexpected("Failed to update campaign", err)
			}
		}
		if c.TypeData, err = u.resolveTypeData(ctx, store, ctype, domain.MergeTypeData(base, in.TypeData)); err != nil {
			return nil, err
		}
	case ctype != c.Type:
		c.TypeData = nil
	}
	c.Type = ctype

	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Budget != nil {
		c.Budget = *in.Budget
	}
	if in.Currency != nil {
		c.Currency = *in.Currency
	}
	if in.DurationDays != nil {
		c.DurationDays = in.DurationDays
	}
	if in.TargetLocation != nil {
		c.TargetLocation = in.TargetLocation
	}
	if in.Platforms != nil {
		c.Platforms = *in.Platforms
	}
	if in.Targeting != nil {
		c.Targeting = in.Targeting.Normalize()
	}
	c.UpdatedAt = u.timestamp()

	if err = u.repo.UpdateCampaign(ctx, c); err != nil {
		return nil, port.Unexpected("Failed to update campaign", err)
	}
	u.views.Invalidate(ctx, port.CampaignsPath, port.CampaignPath(c.ID))
	return c, nil
}

// Delete permanently removes a DRAFT campaign.
func (u *CampaignUseCase) Delete(ctx context.Context, caller domain.Caller, id string) (err error) {
	ctx, span := tracer.Start(ctx, "campaign.Delete", trace.WithAttributes(attribute.String("campaign.id", id)))
	defer func() { endSpan(span, err) }()

	_, c, err := u.loadOwned(ctx, caller, id)
	if err != nil {
		return err
	}
	if !c.Status.Editable() {
		return port.NewError(port.KindInvalidState, "Only draft campaigns can be deleted")
	}
	if err = u.repo.DeleteCampaign(ctx, c.ID); err != nil {
		return port.Unexpected("Failed to delete campaign", err)
	}
	u.views.Invalidate(ctx, port.CampaignsPath, port.CampaignPath(c.ID))
	return nil
}

// Publish moves a DRAFT campaign to PUBLISHED after re-checking that title
// and budget are set. Nothing moves a campaign back to DRAFT.
func (u *CampaignUseCase) Publish(ctx context.Context, caller domain.Caller, id string) (_ *domain.Campaign, err error) {
	ctx, span := tracer.Start(ctx, "campaign.Publish", trace.WithAttributes(attribute.String("campaign.id", id)))
	defer func() { endSpan(span, err) }()

	_, c, err := u.loadOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !c.Status.Editable() {
		return nil, port.NewError(port.KindInvalidState, "Only draft campaigns can be published")
	}
	if missing := c.MissingRequired(); len(missing) > 0 {
		details := make([]port.FieldError, 0, len(missing))
		for _, f := range missing {
			details = append(details, port.FieldError{Field: f, Message: "required to publish"})
		}
		return nil, port.NewError(port.KindValidationFailed, "Campaign is missing required fields", details...)
	}
	now := u.timestamp()
	if err = u.repo.SetCampaignStatus(ctx, c.ID, domain.StatusPublished, now); err != nil {
		return nil, port.Unexpected("Failed to publish campaign", err)
	}
	c.Status = domain.StatusPublished
	c.UpdatedAt = now
	u.views.Invalidate(ctx, port.CampaignsPath, port.CampaignPath(c.ID))
	return c, nil
}

// timestamp returns the current time at the microsecond precision of a
// TIMESTAMPTZ column, so a returned campaign equals its stored form.
func (u *CampaignUseCase) timestamp() time.Time {
	return u.now().UTC().Truncate(time.Microsecond)
}

// callerStore resolves the store owned by the caller.
func (u *CampaignUseCase) callerStore(ctx context.Context, caller domain.Caller) (*domain.Store, error) {
	if !caller.Authenticated() {
		return nil, port.ErrNotAuthenticated
	}
	store, err := u.repo.FindStoreByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, port.Unexpected("Failed to load store", err)
	}
	if store == nil {
		return nil, port.ErrNoStoreFound
	}
	return store, nil
}

// loadOwned fetches a campaign and checks it belongs to the caller's
// store. A campaign of another store is Forbidden, never NotFound.
func (u *CampaignUseCase) loadOwned(ctx context.Context, caller domain.Caller, id string) (*domain.Store, *domain.Campaign, error) {
	store, err := u.callerStore(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, nil, port.Unexpected("Failed to fetch campaign", err)
	}
	if c == nil {
		return nil, nil, port.ErrNotFound
	}
	if c.StoreID != store.ID {
		return nil, nil, port.ErrForbidden
	}
	return store, c, nil
}

// resolveTypeData validates a payload for type t, decodes it into its
// variant and checks product ownership for PRODUCT campaigns.
func (u *CampaignUseCase) resolveTypeData(ctx context.Context, store *domain.Store, t domain.CampaignType, fields map[string]any) (domain.TypeData, error) {
	if err := u.checkFields(u.validator.ValidateTypeData(t, fields)); err != nil {
		return nil, err
	}
	data, err := domain.DecodeTypeData(t, fields)
	if err != nil {
		return nil, invalidField("type_data", err.Error())
	}
	if pid := domain.ProductID(data); pid != "" {
		p, err := u.repo.GetProduct(ctx, pid)
		if err != nil {
			return nil, port.Unexpected("Failed to verify product", err)
		}
		if p == nil || p.StoreID != store.ID {
			return nil, invalidField("type_data.product_id", "Product not found or does not belong to your store")
		}
	}
	return data, nil
}

// checkFields turns a validator result into a ValidationFailed error.
func (u *CampaignUseCase) checkFields(fields []port.FieldError, err error) error {
	if err != nil {
		return port.Unexpected("Failed to validate input", err)
	}
	if len(fields) > 0 {
		return port.NewError(port.KindValidationFailed, port.ErrValidation.Message, fields...)
	}
	return nil
}

func invalidField(field, msg string) error {
	return port.NewError(port.KindValidationFailed, port.ErrValidation.Message, port.FieldError{Field: field, Message: msg})
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
