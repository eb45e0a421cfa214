// internal/interfaces/store.go
package interfaces

import (
	"context"

	"adpulse/internal/models"
)

// CampaignUpdate carries the mutable campaign fields for a partial update.
// Nil fields are left untouched. UpdatedAt is refreshed on every update,
// even when no field is set.
type CampaignUpdate struct {
	Name           *string
	Status         *models.CampaignStatus
	DailyBudget    *float64
	TotalBudget    *float64
	Spent          *float64
	Duration       *int
	TargetAudience *models.TargetAudience
	AdCreative     *models.AdCreative
	ExternalID     *string
}

type CampaignStore interface {
	CreateCampaign(ctx context.Context, c *models.Campaign) error
	// GetCampaign returns ErrCampaignNotFound when the id is unknown.
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
	ListCampaigns(ctx context.Context, userID string) ([]*models.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, update CampaignUpdate) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
	DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error)
}

type MetricStore interface {
	AddMetricSample(ctx context.Context, s *models.MetricSample) error
	// ListMetricSamples returns the campaign's samples ordered ascending by
	// date. An empty slice, not an error, when none exist.
	ListMetricSamples(ctx context.Context, campaignID string) ([]*models.MetricSample, error)
}

type TemplateStore interface {
	ListAdTemplates(ctx context.Context) ([]*models.AdTemplate, error)
	GetAdTemplate(ctx context.Context, id string) (*models.AdTemplate, error)
}

// Store is the full persistence contract the API is wired against.
type Store interface {
	CampaignStore
	MetricStore
	TemplateStore
}
