package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"brandhub/internal/adapter/memory"
	"brandhub/internal/adapter/postgres"
	"brandhub/internal/core/domain"
)

//go:embed fixtures/demo.yaml
var demoFixture []byte

// Fixture is the demo data set: stores, their products and campaigns.
type Fixture struct {
	Stores []struct {
		ID      string `yaml:"id"`
		OwnerID string `yaml:"owner_id"`
		Name    string `yaml:"name"`
		Logo    string `yaml:"logo"`
	} `yaml:"stores"`
	Products []struct {
		ID      string  `yaml:"id"`
		StoreID string  `yaml:"store_id"`
		Name    string  `yaml:"name"`
		Price   float64 `yaml:"price"`
	} `yaml:"products"`
	Campaigns []FixtureCampaign `yaml:"campaigns"`
}

// FixtureCampaign is one seeded campaign plus the number of applicants
// generated for it.
type FixtureCampaign struct {
	ID             string           `yaml:"id"`
	StoreID        string           `yaml:"store_id"`
	Title          string           `yaml:"title"`
	Description    string           `yaml:"description"`
	Budget         float64          `yaml:"budget"`
	Currency       string           `yaml:"currency"`
	DurationDays   *int             `yaml:"duration_days"`
	TargetLocation *domain.Location `yaml:"target_location"`
	Platforms      []string         `yaml:"platforms"`
	Targeting      struct {
		AwarenessGoals  []string `yaml:"awareness_goals"`
		AdvocacyGoals   []string `yaml:"advocacy_goals"`
		ConversionGoals []string `yaml:"conversion_goals"`
		ContentTypes    []string `yaml:"content_types"`
	} `yaml:"targeting"`
	Type       string         `yaml:"type"`
	TypeData   map[string]any `yaml:"type_data"`
	Status     string         `yaml:"status"`
	Applicants int            `yaml:"applicants"`
}

// LoadFixture parses the embedded demo data set.
func LoadFixture() (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(demoFixture, &fx); err != nil {
		return nil, fmt.Errorf("parse demo fixture: %w", err)
	}
	return &fx, nil
}

// Campaign converts the fixture entry into a domain campaign created at
// the given time.
func (fc FixtureCampaign) Campaign(createdAt time.Time) (domain.Campaign, error) {
	c := domain.Campaign{
		ID:             fc.ID,
		StoreID:        fc.StoreID,
		Title:          fc.Title,
		Description:    fc.Description,
		Budget:         fc.Budget,
		Currency:       fc.Currency,
		DurationDays:   fc.DurationDays,
		TargetLocation: fc.TargetLocation,
		Type:           domain.CampaignType(fc.Type),
		Status:         domain.CampaignStatus(fc.Status),
		Targeting: domain.Targeting{
			AwarenessGoals:  fc.Targeting.AwarenessGoals,
			AdvocacyGoals:   fc.Targeting.AdvocacyGoals,
			ConversionGoals: fc.Targeting.ConversionGoals,
			ContentTypes:    fc.Targeting.ContentTypes,
		}.Normalize(),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if !c.Status.Valid() {
		return c, fmt.Errorf("campaign %s: unknown status %q", fc.ID, fc.Status)
	}
	c.Platforms = make([]domain.Platform, 0, len(fc.Platforms))
	for _, p := range fc.Platforms {
		c.Platforms = append(c.Platforms, domain.Platform(p))
	}
	if c.Type != "" && fc.TypeData != nil {
		data, err := domain.DecodeTypeData(c.Type, fc.TypeData)
		if err != nil {
			return c, fmt.Errorf("campaign %s: %w", fc.ID, err)
		}
		c.TypeData = data
	}
	return c, nil
}

// Seed inserts the demo data set into the brandhub database. Existing rows
// are left untouched.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	fx, err := LoadFixture()
	if err != nil {
		return err
	}

	for _, s := range fx.Stores {
		_, err = db.Exec(ctx, `INSERT INTO stores (id, owner_id, name, logo, created_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT DO NOTHING`, s.ID, s.OwnerID, s.Name, s.Logo)
		if err != nil {
			return err
		}
	}
	for _, p := range fx.Products {
		_, err = db.Exec(ctx, `INSERT INTO products (id, store_id, name, price, created_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT DO NOTHING`, p.ID, p.StoreID, p.Name, p.Price)
		if err != nil {
			return err
		}
	}

	repo := postgres.NewCampaignRepository(db)
	// stagger creation times so list ordering is deterministic
	base := time.Now().UTC().Add(-time.Duration(len(fx.Campaigns)) * time.Hour)
	for i, fc := range fx.Campaigns {
		existing, err := repo.GetCampaign(ctx, fc.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		c, err := fc.Campaign(base.Add(time.Duration(i) * time.Hour))
		if err != nil {
			return err
		}
		if err = repo.CreateCampaign(ctx, &c); err != nil {
			return err
		}
		for j := 0; j < fc.Applicants; j++ {
			_, err = db.Exec(ctx, `INSERT INTO campaign_applicants (id, campaign_id, influencer_id, created_at)
VALUES ($1,$2,$3,now()) ON CONFLICT DO NOTHING`,
				uuid.NewString(), c.ID, fmt.Sprintf("influencer-%d", j+1))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedMemory loads the demo data set into an in-memory repository.
func SeedMemory(ctx context.Context, repo *memory.CampaignRepository) error {
	fx, err := LoadFixture()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, s := range fx.Stores {
		repo.PutStore(domain.Store{ID: s.ID, OwnerID: s.OwnerID, Name: s.Name, Logo: s.Logo, CreatedAt: now})
	}
	for _, p := range fx.Products {
		repo.PutProduct(domain.Product{ID: p.ID, StoreID: p.StoreID, Name: p.Name, Price: p.Price})
	}
	base := now.Add(-time.Duration(len(fx.Campaigns)) * time.Hour)
	for i, fc := range fx.Campaigns {
		c, err := fc.Campaign(base.Add(time.Duration(i) * time.Hour))
		if err != nil {
			return err
		}
		if err = repo.CreateCampaign(ctx, &c); err != nil {
			return err
		}
		repo.AddApplicants(c.ID, fc.Applicants)
	}
	return nil
}
