// internal/optimizer/analyze.go
package optimizer

import (
	"context"
	"sort"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// Real-time analysis thresholds, applied to whole-history aggregates.
const (
	lowCTRThreshold      = 0.02 // ratio
	highCPCThreshold     = 2.00 // dollars
	lowConvRateThreshold = 0.05 // ratio
	lowROASThreshold     = 3.0
	criticalROAS         = 2.0
	scaleUpBudgetCeiling = 100.0 // daily budget below which scaling up is suggested
)

// Analyze recomputes the campaign's performance snapshot from its full metric
// history. It fails with ErrCampaignNotFound for an unknown id and ErrNoMetrics
// for a known campaign that has no samples yet.
func (e *Engine) Analyze(ctx context.Context, campaignID string) (*models.CampaignPerformance, error) {
	campaign, err := e.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	samples, err := e.store.ListMetricSamples(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, interfaces.ErrNoMetrics
	}

	s := Aggregate(sortSamples(samples))
	return &models.CampaignPerformance{
		CampaignID:      campaignID,
		CTR:             s.CTR,
		CPC:             s.CPC,
		ConversionRate:  s.ConversionRate,
		ROAS:            s.ROAS,
		QualityScore:    QualityScore(s),
		Recommendations: thresholdRecommendations(campaign, s),
	}, nil
}

// thresholdRecommendations evaluates the fixed dashboard thresholds against
// the aggregate summary. Several can fire at once; the result is ordered by
// priority descending, stable otherwise.
func thresholdRecommendations(c *models.Campaign, s Summary) []models.PerformanceRecommendation {
	recs := make([]models.PerformanceRecommendation, 0, 4)

	if s.CTR < lowCTRThreshold {
		recs = append(recs, models.PerformanceRecommendation{
			Kind:       models.KindCreative,
			Priority:   models.PriorityMedium,
			Action:     "Refresh ad creative to lift click-through rate",
			Impact:     "New creative typically recovers 10-40% CTR",
			Confidence: 0.75,
		})
	}
	if s.CPC > highCPCThreshold {
		recs = append(recs, models.PerformanceRecommendation{
			Kind:       models.KindBidding,
			Priority:   models.PriorityHigh,
			Action:     "Lower bids to bring cost per click down",
			Impact:     "Reduce cost per click by 10-20%",
			Confidence: 0.85,
		})
	}
	if s.ConversionRate < lowConvRateThreshold {
		recs = append(recs, models.PerformanceRecommendation{
			Kind:       models.KindTargeting,
			Priority:   models.PriorityMedium,
			Action:     "Narrow audience targeting to higher-intent segments",
			Impact:     "Better-matched audience lifts conversion rate",
			Confidence: 0.70,
		})
	}
	switch {
	case s.ROAS < criticalROAS:
		recs = append(recs, models.PerformanceRecommendation{
			Kind:       models.KindBudget,
			Priority:   models.PriorityHigh,
			Action:     "Pause campaign or cut daily budget until return recovers",
			Impact:     "Stop losses on spend returning under 2x",
			Confidence: 0.95,
		})
	case s.ROAS < lowROASThreshold:
		recs = append(recs, models.PerformanceRecommendation{
			Kind:       models.KindBudget,
			Priority:   models.PriorityMedium,
			Action:     "Reduce daily budget while return on ad spend is below target",
			Impact:     "Free budget for better-performing campaigns",
			Confidence: 0.65,
		})
	case s.ROAS > lowROASThreshold && c.DailyBudget < scaleUpBudgetCeiling:
		recs = append(recs, models.PerformanceRecommendation{
			Kind:       models.KindBudget,
			Priority:   models.PriorityMedium,
			Action:     "Increase daily budget to scale a high-performing campaign",
			Impact:     "Capture more conversions at the current return",
			Confidence: 0.70,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
	return recs
}
