// internal/models/metric.go
package models

import "time"

// MetricSample is one day of delivery metrics for a campaign. Samples are
// produced by the ingestion side and are immutable once stored.
//
// Raw counts are the single source of truth: CTR and CPC are always derived
// from them and never stored, so the rates cannot drift from the counts.
type MetricSample struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	Cost        float64   `json:"cost"`
}

// CTRPercent returns the sample's click-through rate as a percentage
// (1.0 means 1%). Zero when the sample has no impressions.
func (s *MetricSample) CTRPercent() float64 {
	if s.Impressions == 0 {
		return 0
	}
	return float64(s.Clicks) / float64(s.Impressions) * 100
}

// CPC returns the sample's cost per click in account currency. Zero when the
// sample has no clicks.
func (s *MetricSample) CPC() float64 {
	if s.Clicks == 0 {
		return 0
	}
	return s.Cost / float64(s.Clicks)
}

type CreateMetricSampleRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	Impressions int       `json:"impressions" validate:"gte=0"`
	Clicks      int       `json:"clicks" validate:"gte=0"`
	Conversions int       `json:"conversions" validate:"gte=0"`
	Cost        float64   `json:"cost" validate:"gte=0"`
}
