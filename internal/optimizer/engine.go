// internal/optimizer/engine.go
package optimizer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"adpulse/internal/interfaces"
	"adpulse/internal/metrics"
	"adpulse/internal/models"
)

// Engine evaluates optimization rules against campaign metric histories and
// records the resulting recommendations. Construct one per process and inject
// it into handlers; tests build a fresh instance per case.
type Engine struct {
	store interfaces.Store
	log   RecommendationLog

	rulesMu sync.RWMutex
	rules   []Rule

	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewEngine(store interfaces.Store, recLog RecommendationLog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recLog == nil {
		recLog = NewMemoryLog()
	}
	return &Engine{
		store:  store,
		log:    recLog,
		rules:  DefaultRules(),
		logger: logger,
		now:    time.Now,
	}
}

// Instrument attaches prometheus counters. Optional; the engine works
// without it.
func (e *Engine) Instrument(m *metrics.Metrics) { e.metrics = m }

// ActiveRules returns a snapshot of the enabled rules in evaluation order.
// The engine is shared across request handlers, so the rule set is guarded;
// evaluation always runs over the copy.
func (e *Engine) ActiveRules() []Rule {
	e.rulesMu.RLock()
	defer e.rulesMu.RUnlock()

	out := make([]Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	sortRulesByPriority(out)
	return out
}

// AddRule appends a custom rule to the set.
func (e *Engine) AddRule(r Rule) {
	e.rulesMu.Lock()
	defer e.rulesMu.Unlock()
	e.rules = append(e.rules, r)
}

// RemoveRule deletes a rule by id and reports whether it existed.
func (e *Engine) RemoveRule(id string) bool {
	e.rulesMu.Lock()
	defer e.rulesMu.Unlock()

	for i, r := range e.rules {
		if r.ID == id {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			return true
		}
	}
	return false
}

// SetRuleEnabled toggles a rule by id and reports whether it existed.
func (e *Engine) SetRuleEnabled(id string, enabled bool) bool {
	e.rulesMu.Lock()
	defer e.rulesMu.Unlock()

	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules[i].Enabled = enabled
			return true
		}
	}
	return false
}

// sortRulesByPriority orders descending by priority; ties keep insertion
// order so the recommendation ordering property holds.
func sortRulesByPriority(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
}

// OptimizeCampaign evaluates every enabled rule against the campaign's full
// metric history and appends the matches to the recommendation log. Repeated
// calls append again; the log is a cumulative audit trail, not a set.
func (e *Engine) OptimizeCampaign(ctx context.Context, campaignID string) ([]models.Recommendation, error) {
	campaign, err := e.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	samples, err := e.store.ListMetricSamples(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	samples = sortSamples(samples)

	recs := make([]models.Recommendation, 0)
	for _, rule := range e.ActiveRules() {
		if !rule.Condition(campaign, samples) {
			continue
		}
		recs = append(recs, models.Recommendation{
			CampaignID: campaignID,
			Rule:       rule.Info(),
			Action:     rule.Action(campaign, samples),
			Timestamp:  e.now(),
		})
		if e.metrics != nil {
			e.metrics.RecommendationsGenerated.WithLabelValues(rule.ID).Inc()
		}
	}

	if err := e.log.Append(ctx, campaignID, recs); err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.OptimizationRuns.WithLabelValues("ok").Inc()
	}
	e.logger.Debug("campaign optimized",
		zap.String("campaign_id", campaignID),
		zap.Int("recommendations", len(recs)))
	return recs, nil
}

// BatchOptimizeResult is the outcome of optimizing a whole portfolio.
// Campaigns that failed analysis are skipped, not fatal.
type BatchOptimizeResult struct {
	Recommendations  map[string][]models.Recommendation `json:"recommendations"`
	SkippedCampaigns int                                `json:"skipped_campaigns"`
}

// OptimizeAllCampaigns runs OptimizeCampaign over every active campaign the
// user owns. A failure on one campaign is logged and counted, never aborts
// the batch.
func (e *Engine) OptimizeAllCampaigns(ctx context.Context, userID string) (*BatchOptimizeResult, error) {
	campaigns, err := e.store.ListCampaigns(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &BatchOptimizeResult{
		Recommendations: make(map[string][]models.Recommendation),
	}
	for _, c := range campaigns {
		if c.Status != models.CampaignStatusActive {
			continue
		}
		recs, err := e.OptimizeCampaign(ctx, c.ID)
		if err != nil {
			result.SkippedCampaigns++
			if e.metrics != nil {
				e.metrics.OptimizationRuns.WithLabelValues("skipped").Inc()
			}
			e.logger.Warn("skipping campaign in batch optimize",
				zap.String("campaign_id", c.ID), zap.Error(err))
			continue
		}
		if len(recs) > 0 {
			result.Recommendations[c.ID] = recs
		}
	}
	return result, nil
}

// Recommendations returns the campaign's full recommendation history.
func (e *Engine) Recommendations(ctx context.Context, campaignID string) ([]models.Recommendation, error) {
	return e.log.List(ctx, campaignID)
}

// ApplyRecommendation acts on the recommendation at the given position in the
// campaign's log and reports success. It returns false, without mutating
// anything, when the campaign or index is invalid or the entry was already
// applied: applying an entry is at-most-once, so a retry cannot compound a
// budget change.
func (e *Engine) ApplyRecommendation(ctx context.Context, campaignID string, index int) bool {
	entries, err := e.log.List(ctx, campaignID)
	if err != nil || index < 0 || index >= len(entries) {
		return false
	}
	rec := entries[index]
	if rec.Applied {
		return false
	}

	campaign, err := e.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return false
	}

	update, changed := updateForAction(campaign, rec.Action)
	if changed {
		if _, err := e.store.UpdateCampaign(ctx, campaignID, update); err != nil {
			e.logger.Warn("apply recommendation: update failed",
				zap.String("campaign_id", campaignID), zap.Error(err))
			return false
		}
	}
	if err := e.log.MarkApplied(ctx, campaignID, index); err != nil {
		return false
	}
	if e.metrics != nil {
		e.metrics.RecommendationsApplied.WithLabelValues(string(rec.Action.Type)).Inc()
	}
	return true
}

// updateForAction translates an action into a campaign update. The second
// return value is false for action types that carry no state change
// (audience expansion, creative rotation run on the ads platform itself).
func updateForAction(c *models.Campaign, action models.OptimizationAction) (interfaces.CampaignUpdate, bool) {
	var update interfaces.CampaignUpdate
	switch action.Type {
	case models.ActionBudgetIncrease:
		pct := action.Value
		if pct == 0 {
			pct = 20
		}
		budget := round2(c.DailyBudget * (1 + pct/100))
		update.DailyBudget = &budget
	case models.ActionBudgetDecrease:
		pct := action.Value
		if pct == 0 {
			pct = 20
		}
		budget := round2(c.DailyBudget * (1 - pct/100))
		update.DailyBudget = &budget
	case models.ActionBidAdjustment:
		budget := round2(c.DailyBudget * (1 + action.Value/100))
		update.DailyBudget = &budget
	case models.ActionPauseCampaign:
		status := models.CampaignStatusPaused
		update.Status = &status
	default:
		return update, false
	}
	return update, true
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// IsNotFound reports whether err is the campaign-unknown error.
func IsNotFound(err error) bool {
	return errors.Is(err, interfaces.ErrCampaignNotFound)
}

// IsNoData reports whether err is the no-metrics error.
func IsNoData(err error) bool {
	return errors.Is(err, interfaces.ErrNoMetrics)
}
