package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

// DB is the part of *pgxpool.Pool the repository queries through.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CampaignRepository implements port.CampaignRepository on PostgreSQL.
type CampaignRepository struct {
	pool DB
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool DB) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `
            c.id,
            c.store_id,
            c.title,
            c.description,
            c.budget,
            c.currency,
            c.duration_days,
            c.target_country,
            c.target_city,
            c.platforms,
            c.targeting,
            c.type,
            c.type_data,
            c.status,
            c.created_at,
            c.updated_at`

// FindStoreByOwner returns the store owned by userID.
func (r *CampaignRepository) FindStoreByOwner(ctx context.Context, userID string) (*domain.Store, error) {
	var s domain.Store
	err := r.pool.QueryRow(ctx, `SELECT id, owner_id, name, logo, created_at FROM stores WHERE owner_id = $1 ORDER BY created_at LIMIT 1`, userID).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Logo, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetProduct returns a product by id.
func (r *CampaignRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `SELECT id, store_id, name, price FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateCampaign inserts a new campaign.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	w, err := toRow(c)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO campaigns
    (id, store_id, title, description, budget, currency, duration_days, target_country, target_city,
     platforms, targeting, type, type_data, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		c.ID, c.StoreID, c.Title, c.Description, c.Budget, c.Currency, c.DurationDays, w.country, w.city,
		w.platforms, w.targeting, w.ctype, w.typeData, string(c.Status), c.CreatedAt, c.UpdatedAt)
	return err
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var row campaignRow
	err := r.pool.QueryRow(ctx, `SELECT`+campaignColumns+` FROM campaigns c WHERE c.id = $1`, id).Scan(row.dest()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := row.campaign()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns the store's campaigns, newest first, with their
// applicant count and brand summary.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, storeID string, f port.ListFilter) ([]domain.CampaignSummary, error) {
	query := `
        SELECT` + campaignColumns + `,
            (SELECT count(*) FROM campaign_applicants a WHERE a.campaign_id = c.id),
            s.id,
            s.name,
            s.logo
        FROM campaigns c
        JOIN stores s ON s.id = c.store_id
        WHERE c.store_id = $1`
	args := []any{storeID}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		query += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if f.Type != nil {
		args = append(args, string(*f.Type))
		query += fmt.Sprintf(" AND c.type = $%d", len(args))
	}
	query += " ORDER BY c.created_at DESC, c.id DESC"
	if f.Paginated() {
		args = append(args, f.Limit, f.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CampaignSummary, error) {
		var (
			cr         campaignRow
			summary    domain.CampaignSummary
			applicants int64
		)
		dest := append(cr.dest(), &applicants, &summary.Brand.ID, &summary.Brand.Name, &summary.Brand.Logo)
		if err := row.Scan(dest...); err != nil {
			return summary, err
		}
		c, err := cr.campaign()
		if err != nil {
			return summary, err
		}
		summary.Campaign = c
		summary.ApplicantCount = int(applicants)
		return summary, nil
	})
}

// UpdateCampaign writes the mutable fields of c. store_id, status and
// created_at are left untouched.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, c *domain.Campaign) error {
	w, err := toRow(c)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET
    title = $2, description = $3, budget = $4, currency = $5, duration_days = $6,
    target_country = $7, target_city = $8, platforms = $9, targeting = $10,
    type = $11, type_data = $12, updated_at = $13
WHERE id = $1`,
		c.ID, c.Title, c.Description, c.Budget, c.Currency, c.DurationDays,
		w.country, w.city, w.platforms, w.targeting, w.ctype, w.typeData, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignMissing
	}
	return nil
}

// DeleteCampaign removes a campaign.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignMissing
	}
	return nil
}

// SetCampaignStatus changes the status of a campaign and stamps it with at.
func (r *CampaignRepository) SetCampaignStatus(ctx context.Context, id string, status domain.CampaignStatus, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignMissing
	}
	return nil
}

// campaignRow holds the nullable and encoded columns of a campaign while
// scanning.
type campaignRow struct {
	c         domain.Campaign
	duration  *int32
	country   *string
	city      *string
	platforms []string
	targeting []byte
	ctype     *string
	typeData  []byte
	status    string
}

func (cr *campaignRow) dest() []any {
	return []any{
		&cr.c.ID,
		&cr.c.StoreID,
		&cr.c.Title,
		&cr.c.Description,
		&cr.c.Budget,
		&cr.c.Currency,
		&cr.duration,
		&cr.country,
		&cr.city,
		&cr.platforms,
		&cr.targeting,
		&cr.ctype,
		&cr.typeData,
		&cr.status,
		&cr.c.CreatedAt,
		&cr.c.UpdatedAt,
	}
}

func (cr *campaignRow) campaign() (domain.Campaign, error) {
	c := cr.c
	c.Status = domain.CampaignStatus(cr.status)
	if cr.duration != nil {
		d := int(*cr.duration)
		c.DurationDays = &d
	}
	if cr.country != nil {
		c.TargetLocation = &domain.Location{Country: *cr.country}
		if cr.city != nil {
			c.TargetLocation.City = *cr.city
		}
	}
	c.Platforms = make([]domain.Platform, 0, len(cr.platforms))
	for _, p := range cr.platforms {
		c.Platforms = append(c.Platforms, domain.Platform(p))
	}
	if len(cr.targeting) > 0 {
		if err := json.Unmarshal(cr.targeting, &c.Targeting); err != nil {
			return c, fmt.Errorf("campaign %s targeting: %w", c.ID, err)
		}
	}
	c.Targeting = c.Targeting.Normalize()
	if cr.ctype != nil {
		c.Type = domain.CampaignType(*cr.ctype)
		if len(cr.typeData) > 0 {
			data, err := domain.UnmarshalTypeData(c.Type, cr.typeData)
			if err != nil {
				return c, fmt.Errorf("campaign %s: %w", c.ID, err)
			}
			c.TypeData = data
		}
	}
	return c, nil
}

// writeRow holds the encoded column values of a campaign for writes.
type writeRow struct {
	country   *string
	city      *string
	platforms []string
	targeting []byte
	ctype     *string
	typeData  []byte
}

func toRow(c *domain.Campaign) (writeRow, error) {
	var (
		w   writeRow
		err error
	)
	if c.TargetLocation != nil {
		w.country = &c.TargetLocation.Country
		if c.TargetLocation.City != "" {
			w.city = &c.TargetLocation.City
		}
	}
	w.platforms = make([]string, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		w.platforms = append(w.platforms, string(p))
	}
	if w.targeting, err = json.Marshal(c.Targeting); err != nil {
		return w, err
	}
	if c.Type != "" {
		t := string(c.Type)
		w.ctype = &t
	}
	if c.TypeData != nil {
		if w.typeData, err = json.Marshal(c.TypeData); err != nil {
			return w, err
		}
	}
	return w, nil
}
