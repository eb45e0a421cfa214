// internal/optimizer/rules.go
package optimizer

import (
	"adpulse/internal/models"
)

// Rule is one batch optimization rule. Condition and Action must be pure:
// they inspect the campaign and its ordered metric history and never mutate
// either. Only apply paths touch campaign state.
type Rule struct {
	ID          string
	Name        string
	Description string
	Priority    int // higher is surfaced first
	Enabled     bool

	Condition func(c *models.Campaign, samples []*models.MetricSample) bool
	Action    func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction
}

// Info returns the serialisable identity of the rule for recommendations.
func (r Rule) Info() models.RuleInfo {
	return models.RuleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Priority:    r.Priority,
	}
}

// industryAverageCPC is a simplified per-objective benchmark; real numbers
// would come from an external data feed.
var industryAverageCPC = map[models.CampaignObjective]float64{
	models.ObjectiveBrandAwareness: 0.75,
	models.ObjectiveTraffic:        0.85,
	models.ObjectiveConversions:    1.25,
	models.ObjectiveLeadGeneration: 1.50,
	models.ObjectiveSales:          1.75,
	models.ObjectiveAppInstalls:    0.95,
}

func benchmarkCPC(objective models.CampaignObjective) float64 {
	if v, ok := industryAverageCPC[objective]; ok {
		return v
	}
	return 1.00
}

// lastN returns the trailing n samples, or all of them when fewer exist.
func lastN(samples []*models.MetricSample, n int) []*models.MetricSample {
	if len(samples) <= n {
		return samples
	}
	return samples[len(samples)-n:]
}

// avgCTRPercent averages per-sample click-through rates, in percent.
func avgCTRPercent(samples []*models.MetricSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s.CTRPercent()
	}
	return sum / float64(len(samples))
}

func avgCPC(samples []*models.MetricSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s.CPC()
	}
	return sum / float64(len(samples))
}

func sumConversions(samples []*models.MetricSample) int {
	var total int
	for _, s := range samples {
		total += s.Conversions
	}
	return total
}

func sumImpressions(samples []*models.MetricSample) int {
	var total int
	for _, s := range samples {
		total += s.Impressions
	}
	return total
}

// ctrVariance is the population variance of per-sample CTR percentages.
func ctrVariance(samples []*models.MetricSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	mean := avgCTRPercent(samples)
	var sum float64
	for _, s := range samples {
		d := s.CTRPercent() - mean
		sum += d * d
	}
	return sum / float64(len(samples))
}

// DefaultRules returns the standard rule set. Windows, thresholds, priorities
// and confidences are contractual; tune them only alongside their tests.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "high-ctr-budget-increase",
			Name:        "High CTR Budget Increase",
			Description: "Increase budget for campaigns with CTR > 3% and good conversion rate",
			Priority:    8,
			Enabled:     true,
			Condition: func(c *models.Campaign, samples []*models.MetricSample) bool {
				recent := lastN(samples, 7)
				if len(recent) == 0 {
					return false
				}
				return avgCTRPercent(recent) > 3 &&
					sumConversions(recent) > 5 &&
					c.Status == models.CampaignStatusActive
			},
			Action: func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction {
				return models.OptimizationAction{
					Type:            models.ActionBudgetIncrease,
					Value:           20,
					Reason:          "High CTR (>3%) with good conversions indicates strong performance",
					Confidence:      0.85,
					EstimatedImpact: "+15-25% more conversions",
				}
			},
		},
		{
			ID:          "low-ctr-pause",
			Name:        "Low CTR Campaign Pause",
			Description: "Pause campaigns with consistently low CTR < 0.5%",
			Priority:    9,
			Enabled:     true,
			Condition: func(c *models.Campaign, samples []*models.MetricSample) bool {
				recent := lastN(samples, 5)
				if len(recent) < 3 {
					return false
				}
				return avgCTRPercent(recent) < 0.5 &&
					sumImpressions(recent) > 1000 &&
					c.Status == models.CampaignStatusActive
			},
			Action: func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction {
				return models.OptimizationAction{
					Type:            models.ActionPauseCampaign,
					Reason:          "Consistently low CTR (<0.5%) indicates poor ad relevance",
					Confidence:      0.75,
					EstimatedImpact: "Save 80-100% of ad spend on underperforming campaign",
				}
			},
		},
		{
			ID:          "high-cpc-bid-reduction",
			Name:        "High CPC Bid Reduction",
			Description: "Reduce bids for campaigns with CPC 50% above industry average",
			Priority:    6,
			Enabled:     true,
			Condition: func(c *models.Campaign, samples []*models.MetricSample) bool {
				recent := lastN(samples, 3)
				if len(recent) == 0 {
					return false
				}
				return avgCPC(recent) > benchmarkCPC(c.Objective)*1.5 &&
					c.Status == models.CampaignStatusActive
			},
			Action: func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction {
				return models.OptimizationAction{
					Type:            models.ActionBidAdjustment,
					Value:           -15,
					Reason:          "CPC significantly above industry average",
					Confidence:      0.70,
					EstimatedImpact: "Reduce cost per click by 10-20%",
				}
			},
		},
		{
			ID:          "audience-fatigue",
			Name:        "Audience Fatigue Detection",
			Description: "Expand audience when CTR declines significantly over time",
			Priority:    7,
			Enabled:     true,
			Condition: func(c *models.Campaign, samples []*models.MetricSample) bool {
				if len(samples) < 7 {
					return false
				}
				early := avgCTRPercent(samples[:3])
				late := avgCTRPercent(lastN(samples, 3))
				return early > 0 && late < early*0.7 &&
					c.Status == models.CampaignStatusActive
			},
			Action: func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction {
				return models.OptimizationAction{
					Type:            models.ActionAudienceExpansion,
					Value:           25,
					Reason:          "CTR declined by 30%+ indicating audience fatigue",
					Confidence:      0.65,
					EstimatedImpact: "Refresh audience reach, potentially increase CTR by 15-30%",
				}
			},
		},
		{
			ID:          "creative-rotation",
			Name:        "Creative Rotation",
			Description: "Suggest new creative when performance stagnates",
			Priority:    5,
			Enabled:     true,
			Condition: func(c *models.Campaign, samples []*models.MetricSample) bool {
				recent := lastN(samples, 10)
				if len(recent) < 7 {
					return false
				}
				// Low variance means the campaign has plateaued.
				return ctrVariance(recent) < 0.1 &&
					c.Status == models.CampaignStatusActive
			},
			Action: func(c *models.Campaign, samples []*models.MetricSample) models.OptimizationAction {
				return models.OptimizationAction{
					Type:            models.ActionCreativeRotation,
					Reason:          "Performance has plateaued - fresh creative may improve results",
					Confidence:      0.60,
					EstimatedImpact: "Potential 10-40% improvement with new creative",
				}
			},
		},
	}
}
