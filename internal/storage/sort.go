// internal/storage/sort.go
package storage

import (
	"sort"

	"adpulse/internal/models"
)

func sortCampaignsByCreation(campaigns []*models.Campaign) {
	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.Before(campaigns[j].CreatedAt)
	})
}

func sortSamplesByDate(samples []*models.MetricSample) {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date)
	})
}
