package optimizer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// testStore is a minimal in-memory Store for engine tests. It applies updates
// the same way the real stores do and can be told to fail specific calls.
type testStore struct {
	campaigns map[string]*models.Campaign
	samples   map[string][]*models.MetricSample

	failSamplesFor string
	failUpdates    bool
	updateCalls    int
}

func newTestStore() *testStore {
	return &testStore{
		campaigns: make(map[string]*models.Campaign),
		samples:   make(map[string][]*models.MetricSample),
	}
}

func (s *testStore) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	s.campaigns[c.ID] = c
	return nil
}

func (s *testStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	c, ok := s.campaigns[id]
	if !ok {
		return nil, interfaces.ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *testStore) ListCampaigns(ctx context.Context, userID string) ([]*models.Campaign, error) {
	out := make([]*models.Campaign, 0)
	for _, c := range s.campaigns {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *testStore) UpdateCampaign(ctx context.Context, id string, update interfaces.CampaignUpdate) (*models.Campaign, error) {
	s.updateCalls++
	if s.failUpdates {
		return nil, errors.New("update refused")
	}
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
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (s *testStore) DeleteCampaign(ctx context.Context, id string) error {
	delete(s.campaigns, id)
	return nil
}

func (s *testStore) DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	return &models.DashboardStats{}, nil
}

func (s *testStore) AddMetricSample(ctx context.Context, m *models.MetricSample) error {
	s.samples[m.CampaignID] = append(s.samples[m.CampaignID], m)
	return nil
}

func (s *testStore) ListMetricSamples(ctx context.Context, campaignID string) ([]*models.MetricSample, error) {
	if campaignID == s.failSamplesFor {
		return nil, errors.New("metrics unavailable")
	}
	return s.samples[campaignID], nil
}

func (s *testStore) ListAdTemplates(ctx context.Context) ([]*models.AdTemplate, error) {
	return nil, nil
}

func (s *testStore) GetAdTemplate(ctx context.Context, id string) (*models.AdTemplate, error) {
	return nil, interfaces.ErrTemplateNotFound
}

var _ interfaces.Store = (*testStore)(nil)

func day(n int) time.Time {
	return time.Date(2026, time.January, n, 0, 0, 0, 0, time.UTC)
}

// sample builds one day of metrics, dated by its position in the history.
func sample(campaignID string, dayN, impressions, clicks, conversions int, cost float64) *models.MetricSample {
	return &models.MetricSample{
		ID:          campaignID + "-" + day(dayN).Format("2006-01-02"),
		CampaignID:  campaignID,
		Date:        day(dayN),
		Impressions: impressions,
		Clicks:      clicks,
		Conversions: conversions,
		Cost:        cost,
	}
}

func activeCampaign(id, userID string, objective models.CampaignObjective, dailyBudget float64) *models.Campaign {
	return &models.Campaign{
		ID:          id,
		UserID:      userID,
		Name:        "campaign " + id,
		Objective:   objective,
		Platforms:   []string{"facebook"},
		Status:      models.CampaignStatusActive,
		DailyBudget: dailyBudget,
		Duration:    30,
		CreatedAt:   day(1),
		UpdatedAt:   day(1),
	}
}

// addHistory stores n identical daily samples for the campaign.
func addHistory(s *testStore, campaignID string, n, impressions, clicks, conversions int, cost float64) {
	for i := 1; i <= n; i++ {
		s.samples[campaignID] = append(s.samples[campaignID], sample(campaignID, i, impressions, clicks, conversions, cost))
	}
}

func TestOptimizeCampaignOrdersByRulePriority(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)
	// Flat 0.2% CTR over 10 days trips both the pause rule (priority 9) and
	// the creative rotation rule (priority 5).
	addHistory(store, "c1", 10, 1000, 2, 0, 0)

	e := NewEngine(store, nil, nil)
	recs, err := e.OptimizeCampaign(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "low-ctr-pause", recs[0].Rule.ID)
	assert.Equal(t, "creative-rotation", recs[1].Rule.ID)
	assert.Equal(t, models.ActionPauseCampaign, recs[0].Action.Type)
	assert.False(t, recs[0].Applied)

	// The log is cumulative: a second run appends, not replaces.
	_, err = e.OptimizeCampaign(context.Background(), "c1")
	require.NoError(t, err)
	logged, err := e.Recommendations(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, logged, 4)
}

func TestOptimizeCampaignUnknownID(t *testing.T) {
	e := NewEngine(newTestStore(), nil, nil)
	_, err := e.OptimizeCampaign(context.Background(), "nope")
	assert.True(t, IsNotFound(err))
}

func TestOptimizeCampaignNoSamplesNoMatches(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)

	e := NewEngine(store, nil, nil)
	recs, err := e.OptimizeCampaign(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestOptimizeAllCampaignsSkipsFailuresAndInactive(t *testing.T) {
	store := newTestStore()
	store.campaigns["a"] = activeCampaign("a", "u1", models.ObjectiveTraffic, 50)
	addHistory(store, "a", 10, 1000, 2, 0, 0)

	paused := activeCampaign("b", "u1", models.ObjectiveTraffic, 50)
	paused.Status = models.CampaignStatusPaused
	store.campaigns["b"] = paused
	addHistory(store, "b", 10, 1000, 2, 0, 0)

	store.campaigns["c"] = activeCampaign("c", "u1", models.ObjectiveTraffic, 50)
	store.failSamplesFor = "c"

	e := NewEngine(store, nil, nil)
	result, err := e.OptimizeAllCampaigns(context.Background(), "u1")
	require.NoError(t, err)

	assert.Contains(t, result.Recommendations, "a")
	assert.NotContains(t, result.Recommendations, "b")
	assert.NotContains(t, result.Recommendations, "c")
	assert.Equal(t, 1, result.SkippedCampaigns)
}

func TestApplyRecommendationBudgetIncrease(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)
	// 4% CTR with steady conversions trips the budget increase rule.
	addHistory(store, "c1", 7, 1000, 40, 1, 20)

	e := NewEngine(store, nil, nil)
	recs, err := e.OptimizeCampaign(context.Background(), "c1")
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	require.Equal(t, models.ActionBudgetIncrease, recs[0].Action.Type)

	ok := e.ApplyRecommendation(context.Background(), "c1", 0)
	require.True(t, ok)
	assert.InDelta(t, 60.0, store.campaigns["c1"].DailyBudget, 1e-9)

	logged, err := e.Recommendations(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, logged[0].Applied)
}

func TestApplyRecommendationIsAtMostOnce(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)
	addHistory(store, "c1", 7, 1000, 40, 1, 20)

	e := NewEngine(store, nil, nil)
	_, err := e.OptimizeCampaign(context.Background(), "c1")
	require.NoError(t, err)

	require.True(t, e.ApplyRecommendation(context.Background(), "c1", 0))
	budgetAfterFirst := store.campaigns["c1"].DailyBudget

	// A retry must not compound the budget change.
	assert.False(t, e.ApplyRecommendation(context.Background(), "c1", 0))
	assert.Equal(t, budgetAfterFirst, store.campaigns["c1"].DailyBudget)
}

func TestApplyRecommendationInvalidIndex(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)

	e := NewEngine(store, nil, nil)
	assert.False(t, e.ApplyRecommendation(context.Background(), "c1", 0))
	assert.False(t, e.ApplyRecommendation(context.Background(), "c1", -1))
	assert.Equal(t, 0, store.updateCalls)
}

func TestApplyRecommendationPauseAction(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)
	addHistory(store, "c1", 5, 1000, 2, 0, 0)

	e := NewEngine(store, nil, nil)
	recs, err := e.OptimizeCampaign(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, models.ActionPauseCampaign, recs[0].Action.Type)

	require.True(t, e.ApplyRecommendation(context.Background(), "c1", 0))
	assert.Equal(t, models.CampaignStatusPaused, store.campaigns["c1"].Status)
}

func TestApplyRecommendationFailedUpdateLeavesLogUntouched(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)
	addHistory(store, "c1", 7, 1000, 40, 1, 20)

	e := NewEngine(store, nil, nil)
	_, err := e.OptimizeCampaign(context.Background(), "c1")
	require.NoError(t, err)

	store.failUpdates = true
	assert.False(t, e.ApplyRecommendation(context.Background(), "c1", 0))

	logged, err := e.Recommendations(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, logged[0].Applied)
}

func TestRuleManagement(t *testing.T) {
	e := NewEngine(newTestStore(), nil, nil)

	require.True(t, e.SetRuleEnabled("creative-rotation", false))
	for _, r := range e.ActiveRules() {
		assert.NotEqual(t, "creative-rotation", r.ID)
	}

	assert.True(t, e.RemoveRule("low-ctr-pause"))
	assert.False(t, e.RemoveRule("low-ctr-pause"))
	assert.False(t, e.SetRuleEnabled("no-such-rule", true))

	e.AddRule(Rule{
		ID:       "custom",
		Priority: 100,
		Enabled:  true,
		Condition: func(c *models.Campaign, samples []*models.MetricSample) bool {
			return true
		},
		Action: func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction {
			return models.OptimizationAction{Type: models.ActionCreativeRotation}
		},
	})
	active := e.ActiveRules()
	require.NotEmpty(t, active)
	assert.Equal(t, "custom", active[0].ID)
}

// Rule management can be called while optimizations are in flight; the race
// detector flags any unguarded access to the rule set.
func TestRuleManagementConcurrentWithOptimize(t *testing.T) {
	store := newTestStore()
	store.campaigns["c1"] = activeCampaign("c1", "u1", models.ObjectiveTraffic, 50)
	addHistory(store, "c1", 10, 1000, 2, 0, 10)

	e := NewEngine(store, nil, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			e.SetRuleEnabled("creative-rotation", i%2 == 0)
			e.AddRule(Rule{
				ID:      "scratch",
				Enabled: false,
				Condition: func(c *models.Campaign, samples []*models.MetricSample) bool {
					return false
				},
				Action: func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction {
					return models.OptimizationAction{}
				},
			})
			e.RemoveRule("scratch")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if _, err := e.OptimizeCampaign(context.Background(), "c1"); err != nil {
				t.Errorf("OptimizeCampaign: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestUpdateForActionDefaults(t *testing.T) {
	c := &models.Campaign{DailyBudget: 80}

	update, changed := updateForAction(c, models.OptimizationAction{Type: models.ActionBudgetIncrease})
	require.True(t, changed)
	require.NotNil(t, update.DailyBudget)
	assert.InDelta(t, 96.0, *update.DailyBudget, 1e-9)

	update, changed = updateForAction(c, models.OptimizationAction{Type: models.ActionBudgetDecrease})
	require.True(t, changed)
	assert.InDelta(t, 64.0, *update.DailyBudget, 1e-9)

	update, changed = updateForAction(c, models.OptimizationAction{Type: models.ActionBidAdjustment, Value: -15})
	require.True(t, changed)
	assert.InDelta(t, 68.0, *update.DailyBudget, 1e-9)

	_, changed = updateForAction(c, models.OptimizationAction{Type: models.ActionAudienceExpansion})
	assert.False(t, changed)
	_, changed = updateForAction(c, models.OptimizationAction{Type: models.ActionCreativeRotation})
	assert.False(t, changed)
}
