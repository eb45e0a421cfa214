// internal/optimizer/insights.go
package optimizer

import (
	"context"

	"go.uber.org/zap"

	"adpulse/internal/models"
)

const (
	// savingsRate is the share of daily budget considered recoverable on a
	// campaign returning under 2x.
	savingsRate = 0.30
	// maxTopRecommendations caps the portfolio-level recommendation list.
	maxTopRecommendations = 5
)

// Insights analyzes every campaign the user owns and rolls the results up to
// a portfolio summary. Campaigns with no metric samples (or whose analysis
// fails) are skipped and counted, never fatal to the batch.
func (e *Engine) Insights(ctx context.Context, userID string) (*models.OptimizationInsights, error) {
	campaigns, err := e.store.ListCampaigns(ctx, userID)
	if err != nil {
		return nil, err
	}

	insights := &models.OptimizationInsights{
		TopRecommendations: make([]models.PerformanceRecommendation, 0, maxTopRecommendations),
	}
	for _, c := range campaigns {
		perf, err := e.Analyze(ctx, c.ID)
		if err != nil {
			insights.SkippedCampaigns++
			if !IsNoData(err) {
				e.logger.Warn("skipping campaign in insights",
					zap.String("campaign_id", c.ID), zap.Error(err))
			}
			continue
		}

		insights.TotalCampaigns++
		if len(perf.Recommendations) > 0 {
			insights.NeedsOptimization++
		}
		if perf.ROAS < criticalROAS {
			insights.PotentialSavings += c.DailyBudget * savingsRate
		}
		for _, rec := range perf.Recommendations {
			if rec.Priority != models.PriorityHigh {
				continue
			}
			if len(insights.TopRecommendations) < maxTopRecommendations {
				insights.TopRecommendations = append(insights.TopRecommendations, rec)
			}
		}
	}
	return insights, nil
}
