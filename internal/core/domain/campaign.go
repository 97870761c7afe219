package domain

import "time"

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "DRAFT"
	StatusPublished CampaignStatus = "PUBLISHED"

	// Reserved for workflows outside the lifecycle manager. No transition
	// in this service moves a campaign into these states.
	StatusActive    CampaignStatus = "ACTIVE"
	StatusPaused    CampaignStatus = "PAUSED"
	StatusCompleted CampaignStatus = "COMPLETED"
	StatusCancelled CampaignStatus = "CANCELLED"
)

// Valid reports whether s is one of the declared statuses.
func (s CampaignStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusActive, StatusPaused, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Editable reports whether a campaign in this status may be changed,
// deleted or published.
func (s CampaignStatus) Editable() bool {
	return s == StatusDraft
}

// Platform is a social network an influencer publishes on.
type Platform string

const (
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformTikTok    Platform = "TIKTOK"
	PlatformYouTube   Platform = "YOUTUBE"
	PlatformFacebook  Platform = "FACEBOOK"
	PlatformTwitter   Platform = "TWITTER"
	PlatformLinkedIn  Platform = "LINKEDIN"
)

// Location is the country/city pair influencers are targeted in.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
}

// Campaign represents an advertising campaign owned by a single store.
// StoreID is set on creation and never changes afterwards.
type Campaign struct {
	ID             string
	StoreID        string
	Title          string
	Description    string
	Budget         float64
	Currency       string
	DurationDays   *int
	TargetLocation *Location
	Platforms      []Platform
	Targeting      Targeting
	Type           CampaignType // empty when the campaign is untyped
	TypeData       TypeData     // nil when Type is empty or no payload was given
	Status         CampaignStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MissingRequired returns the names of fields that must be set before the
// campaign can be published.
func (c *Campaign) MissingRequired() []string {
	var missing []string
	if c.Title == "" {
		missing = append(missing, "title")
	}
	if c.Budget <= 0 {
		missing = append(missing, "budget")
	}
	return missing
}

// Brand is the public summary of the store owning a campaign.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// CampaignSummary is a campaign annotated with data owned by other
// collaborators, as shown in campaign lists.
type CampaignSummary struct {
	Campaign
	ApplicantCount int
	Brand          Brand
}
