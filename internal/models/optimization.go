// internal/models/optimization.go
package models

import "time"

type ActionType string

const (
	ActionBudgetIncrease    ActionType = "budget_increase"
	ActionBudgetDecrease    ActionType = "budget_decrease"
	ActionPauseCampaign     ActionType = "pause_campaign"
	ActionBidAdjustment     ActionType = "bid_adjustment"
	ActionAudienceExpansion ActionType = "audience_expansion"
	ActionCreativeRotation  ActionType = "creative_rotation"
)

// OptimizationAction is what a batch rule proposes doing to a campaign.
// Value is a signed percentage whose meaning depends on Type.
type OptimizationAction struct {
	Type            ActionType `json:"type"`
	Value           float64    `json:"value,omitempty"`
	Reason          string     `json:"reason"`
	Confidence      float64    `json:"confidence"` // 0..1
	EstimatedImpact string     `json:"estimated_impact"`
}

// RuleInfo identifies the rule that produced a recommendation without
// carrying the rule's condition/action functions.
type RuleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// Recommendation is one batch-rule match, appended to the per-campaign log.
// Applied flips to true exactly once, when the recommendation is acted on.
type Recommendation struct {
	CampaignID string             `json:"campaign_id"`
	Rule       RuleInfo           `json:"rule"`
	Action     OptimizationAction `json:"action"`
	Timestamp  time.Time          `json:"timestamp"`
	Applied    bool               `json:"applied"`
}

type RecommendationKind string

const (
	KindBudget    RecommendationKind = "budget"
	KindTargeting RecommendationKind = "targeting"
	KindCreative  RecommendationKind = "creative"
	KindBidding   RecommendationKind = "bidding"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting, higher first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// PerformanceRecommendation is the lightweight, dashboard-facing variant
// produced by the real-time threshold analysis.
type PerformanceRecommendation struct {
	Kind       RecommendationKind `json:"type"`
	Priority   Priority           `json:"priority"`
	Action     string             `json:"action"`
	Impact     string             `json:"impact"`
	Confidence float64            `json:"confidence"`
}

// CampaignPerformance is recomputed from the full metric history on every
// analysis call; it is never persisted.
type CampaignPerformance struct {
	CampaignID      string                      `json:"campaign_id"`
	CTR             float64                     `json:"ctr"`
	CPC             float64                     `json:"cpc"`
	ConversionRate  float64                     `json:"conversion_rate"`
	ROAS            float64                     `json:"roas"`
	QualityScore    int                         `json:"quality_score"` // 1..10
	Recommendations []PerformanceRecommendation `json:"recommendations"`
}

// AutoOptimizeResult splits a campaign's real-time recommendations into the
// ones that were applied automatically and the ones left for a human.
type AutoOptimizeResult struct {
	Applied []PerformanceRecommendation `json:"applied"`
	Pending []PerformanceRecommendation `json:"pending"`
}

// OptimizationInsights is the portfolio-level summary for a user. Campaigns
// without any metric samples are excluded from TotalCampaigns and counted in
// SkippedCampaigns instead.
type OptimizationInsights struct {
	TotalCampaigns     int                         `json:"total_campaigns"`
	NeedsOptimization  int                         `json:"needs_optimization"`
	PotentialSavings   float64                     `json:"potential_savings"`
	TopRecommendations []PerformanceRecommendation `json:"top_recommendations"`
	SkippedCampaigns   int                         `json:"skipped_campaigns"`
}
