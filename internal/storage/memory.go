// internal/storage/memory.go
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// MemoryStore is the default, mutex-guarded in-process store. It stands in
// for a database in development and tests and comes pre-seeded with a few ad
// templates.
type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[string]*models.Campaign
	// samples are kept per campaign in insertion order.
	samples   map[string][]*models.MetricSample
	templates map[string]*models.AdTemplate
	// templateOrder preserves a stable listing order for the seeded gallery.
	templateOrder []string
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		campaigns: make(map[string]*models.Campaign),
		samples:   make(map[string][]*models.MetricSample),
		templates: make(map[string]*models.AdTemplate),
	}
	s.seedTemplates()
	return s
}

var _ interfaces.Store = (*MemoryStore)(nil)

func (s *MemoryStore) seedTemplates() {
	seed := []*models.AdTemplate{
		{
			Name:     "Summer Sale Banner",
			Category: "promotion",
			Platform: "both",
			Content: models.TemplateContent{
				Headline:     "Summer Sale - Up to 50% Off",
				Description:  "Don't miss out on our biggest sale of the year!",
				CallToAction: "Shop Now",
			},
		},
		{
			Name:     "Brand Awareness",
			Category: "branding",
			Platform: "instagram",
			Content: models.TemplateContent{
				Headline:     "Discover Our Brand",
				Description:  "Quality products for modern lifestyle",
				CallToAction: "Learn More",
			},
		},
		{
			Name:     "Holiday Collection",
			Category: "seasonal",
			Platform: "facebook",
			Content: models.TemplateContent{
				Headline:     "Holiday Collection 2026",
				Description:  "Perfect gifts for everyone on your list",
				CallToAction: "Shop Collection",
			},
		},
	}
	for _, t := range seed {
		t.ID = uuid.NewString()
		t.IsActive = true
		t.CreatedAt = time.Now().UTC()
		s.templates[t.ID] = t
		s.templateOrder = append(s.templateOrder, t.ID)
	}
}

func (s *MemoryStore) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}
	cp := *c
	s.campaigns[c.ID] = &cp
	return nil
}

func (s *MemoryStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, interfaces.ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) ListCampaigns(ctx context.Context, userID string) ([]*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Campaign, 0)
	for _, c := range s.campaigns {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sortCampaignsByCreation(out)
	return out, nil
}

func (s *MemoryStore) UpdateCampaign(ctx context.Context, id string, update interfaces.CampaignUpdate) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, interfaces.ErrCampaignNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Status != nil {
		c.Status = *update.Status
	}
	if update.DailyBudget != nil {
		c.DailyBudget = *update.DailyBudget
	}
	if update.TotalBudget != nil {
		c.TotalBudget = *update.TotalBudget
	}
	if update.Spent != nil {
		c.Spent = *update.Spent
	}
	if update.Duration != nil {
		c.Duration = *update.Duration
	}
	if update.TargetAudience != nil {
		c.TargetAudience = update.TargetAudience
	}
	if update.AdCreative != nil {
		c.AdCreative = update.AdCreative
	}
	if update.ExternalID != nil {
		c.ExternalID = *update.ExternalID
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) DeleteCampaign(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return interfaces.ErrCampaignNotFound
	}
	delete(s.campaigns, id)
	delete(s.samples, id)
	return nil
}

func (s *MemoryStore) AddMetricSample(ctx context.Context, m *models.MetricSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[m.CampaignID]; !ok {
		return interfaces.ErrCampaignNotFound
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	cp := *m
	s.samples[m.CampaignID] = append(s.samples[m.CampaignID], &cp)
	return nil
}

func (s *MemoryStore) ListMetricSamples(ctx context.Context, campaignID string) ([]*models.MetricSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.samples[campaignID]
	out := make([]*models.MetricSample, 0, len(stored))
	for _, m := range stored {
		cp := *m
		out = append(out, &cp)
	}
	sortSamplesByDate(out)
	return out, nil
}

func (s *MemoryStore) ListAdTemplates(ctx context.Context) ([]*models.AdTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.AdTemplate, 0, len(s.templateOrder))
	for _, id := range s.templateOrder {
		if t := s.templates[id]; t != nil && t.IsActive {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetAdTemplate(ctx context.Context, id string) (*models.AdTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return nil, interfaces.ErrTemplateNotFound
	}
	cp := *t
	return &cp, nil
}

// DashboardStats aggregates the user's portfolio from stored samples, unlike
// the legacy dashboard which reported canned numbers.
func (s *MemoryStore) DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DashboardStats{}
	var totalBudget, totalCost float64
	for _, c := range s.campaigns {
		if c.UserID != userID {
			continue
		}
		if c.Status == models.CampaignStatusActive {
			stats.ActiveCampaigns++
		}
		stats.TotalSpent += c.Spent
		if c.TotalBudget > 0 {
			totalBudget += c.TotalBudget
		} else {
			totalBudget += c.DailyBudget * float64(c.Duration)
		}
		for _, m := range s.samples[c.ID] {
			stats.TotalImpressions += int64(m.Impressions)
			stats.TotalClicks += int64(m.Clicks)
			totalCost += m.Cost
		}
	}
	if stats.TotalImpressions > 0 {
		stats.AvgCTR = float64(stats.TotalClicks) / float64(stats.TotalImpressions)
	}
	if stats.TotalClicks > 0 {
		stats.AvgCPC = totalCost / float64(stats.TotalClicks)
	}
	stats.BudgetRemaining = totalBudget - stats.TotalSpent
	return stats, nil
}
