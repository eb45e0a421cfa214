// internal/models/campaign.go
package models

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

type CampaignObjective string

const (
	ObjectiveBrandAwareness CampaignObjective = "brand_awareness"
	ObjectiveTraffic        CampaignObjective = "traffic"
	ObjectiveConversions    CampaignObjective = "conversions"
	ObjectiveLeadGeneration CampaignObjective = "lead_generation"
	ObjectiveSales          CampaignObjective = "sales"
	ObjectiveAppInstalls    CampaignObjective = "app_installs"
)

// TargetAudience is the structured targeting block attached to a campaign.
type TargetAudience struct {
	AgeMin    int      `json:"age_min,omitempty"`
	AgeMax    int      `json:"age_max,omitempty"`
	Genders   []string `json:"genders,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// AdCreative is the creative content for a campaign's ads.
type AdCreative struct {
	Headline     string `json:"headline"`
	Description  string `json:"description"`
	CallToAction string `json:"call_to_action,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	LinkURL      string `json:"link_url,omitempty"`
}

type Campaign struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Name           string            `json:"name"`
	Objective      CampaignObjective `json:"objective"`
	Platforms      []string          `json:"platforms"`
	Status         CampaignStatus    `json:"status"`
	DailyBudget    float64           `json:"daily_budget"`
	TotalBudget    float64           `json:"total_budget,omitempty"`
	Spent          float64           `json:"spent"`
	Duration       int               `json:"duration"` // days
	TargetAudience *TargetAudience   `json:"target_audience,omitempty"`
	AdCreative     *AdCreative       `json:"ad_creative,omitempty"`
	// ExternalID is set once the campaign has been published to the ads platform.
	ExternalID string    `json:"external_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Name           string          `json:"name" validate:"required"`
	Objective      string          `json:"objective" validate:"required,oneof=brand_awareness traffic conversions lead_generation sales app_installs"`
	Platforms      []string        `json:"platforms" validate:"required,min=1,dive,oneof=facebook instagram"`
	DailyBudget    float64         `json:"daily_budget" validate:"required,gt=0"`
	TotalBudget    float64         `json:"total_budget,omitempty" validate:"omitempty,gt=0"`
	Duration       int             `json:"duration" validate:"required,gte=1"`
	TargetAudience *TargetAudience `json:"target_audience" validate:"required"`
	AdCreative     *AdCreative     `json:"ad_creative,omitempty"`
}

type UpdateCampaignRequest struct {
	Name           *string         `json:"name,omitempty"`
	Status         *string         `json:"status,omitempty" validate:"omitempty,oneof=draft active paused completed"`
	DailyBudget    *float64        `json:"daily_budget,omitempty" validate:"omitempty,gt=0"`
	TotalBudget    *float64        `json:"total_budget,omitempty" validate:"omitempty,gt=0"`
	Duration       *int            `json:"duration,omitempty" validate:"omitempty,gte=1"`
	TargetAudience *TargetAudience `json:"target_audience,omitempty"`
	AdCreative     *AdCreative     `json:"ad_creative,omitempty"`
}

// DashboardStats summarises a user's portfolio for the dashboard header cards.
type DashboardStats struct {
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	AvgCTR           float64 `json:"avg_ctr"`
	AvgCPC           float64 `json:"avg_cpc"`
	ActiveCampaigns  int     `json:"active_campaigns"`
	TotalSpent       float64 `json:"total_spent"`
	BudgetRemaining  float64 `json:"budget_remaining"`
}
