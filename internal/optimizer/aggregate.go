// internal/optimizer/aggregate.go
package optimizer

import (
	"sort"

	"adpulse/internal/models"
)

// conversionValue is the revenue proxy per conversion used for ROAS. There is
// no real order-value signal in the metric pipeline, so every budget-related
// recommendation downstream leans on this constant. Swapping in a real signal
// only touches this file.
const conversionValue = 100.0

// Summary holds whole-history totals and the rates derived from them.
// CTR and ConversionRate are ratios (0.01 = 1%); CPC is account currency.
type Summary struct {
	Impressions int
	Clicks      int
	Conversions int
	Cost        float64

	CTR            float64
	CPC            float64
	ConversionRate float64
	ROAS           float64
}

// sortSamples orders samples ascending by date, so that "last N samples"
// always means the N most recent days regardless of store ordering.
func sortSamples(samples []*models.MetricSample) []*models.MetricSample {
	out := make([]*models.MetricSample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Aggregate reduces a campaign's full metric history to summary statistics.
// All divisions guard their denominator: a history with no impressions has
// CTR 0, no clicks has CPC and conversion rate 0, no cost has ROAS 0.
func Aggregate(samples []*models.MetricSample) Summary {
	var s Summary
	for _, m := range samples {
		s.Impressions += m.Impressions
		s.Clicks += m.Clicks
		s.Conversions += m.Conversions
		s.Cost += m.Cost
	}
	if s.Impressions > 0 {
		s.CTR = float64(s.Clicks) / float64(s.Impressions)
	}
	if s.Clicks > 0 {
		s.CPC = s.Cost / float64(s.Clicks)
		s.ConversionRate = float64(s.Conversions) / float64(s.Clicks)
	}
	if s.Cost > 0 {
		s.ROAS = float64(s.Conversions) * conversionValue / s.Cost
	}
	return s
}
