// internal/optimizer/autoapply.go
package optimizer

import (
	"context"
	"strings"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// Auto-apply gates. Both comparisons are strict: a confidence of exactly 0.8
// is never auto-applied.
const (
	autoApplyBiddingConfidence = 0.8
	autoApplyPauseConfidence   = 0.9
)

// shouldAutoApply decides whether a real-time recommendation may be acted on
// without human confirmation: high-confidence bid reductions, and
// very-high-confidence budget recommendations whose action is a pause.
func shouldAutoApply(rec models.PerformanceRecommendation) bool {
	if rec.Kind == models.KindBidding && rec.Confidence > autoApplyBiddingConfidence {
		return true
	}
	if rec.Kind == models.KindBudget && rec.Confidence > autoApplyPauseConfidence &&
		strings.Contains(strings.ToLower(rec.Action), "pause") {
		return true
	}
	return false
}

// AutoOptimize analyzes the campaign and applies the recommendations that
// clear the auto-apply gates, returning the rest as pending.
//
// Known gap carried from the platform side: applying a bidding
// recommendation only refreshes the campaign's update timestamp, because no
// bid-modifier field exists yet on the campaign record. A pause-type budget
// recommendation sets status to paused; the optimizer never un-pauses.
func (e *Engine) AutoOptimize(ctx context.Context, campaignID string) (*models.AutoOptimizeResult, error) {
	perf, err := e.Analyze(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	campaign, err := e.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	result := &models.AutoOptimizeResult{
		Applied: make([]models.PerformanceRecommendation, 0),
		Pending: make([]models.PerformanceRecommendation, 0),
	}
	for _, rec := range perf.Recommendations {
		if !shouldAutoApply(rec) {
			result.Pending = append(result.Pending, rec)
			continue
		}

		update := updateForAutoApply(campaign, rec)
		if _, err := e.store.UpdateCampaign(ctx, campaignID, update); err != nil {
			// Leave the recommendation pending rather than lose it.
			result.Pending = append(result.Pending, rec)
			continue
		}
		result.Applied = append(result.Applied, rec)
		if e.metrics != nil {
			e.metrics.RecommendationsApplied.WithLabelValues("auto_" + string(rec.Kind)).Inc()
		}
	}
	return result, nil
}

// updateForAutoApply builds the state change for an auto-applied
// recommendation. A pause-type budget recommendation pauses an active
// campaign; bidding recommendations produce an empty update, which still
// refreshes UpdatedAt (see the gap note above).
func updateForAutoApply(c *models.Campaign, rec models.PerformanceRecommendation) interfaces.CampaignUpdate {
	var update interfaces.CampaignUpdate
	if rec.Kind == models.KindBudget && c.Status == models.CampaignStatusActive {
		status := models.CampaignStatusPaused
		update.Status = &status
	}
	return update
}
