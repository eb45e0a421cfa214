// internal/repository/store.go
package repository

import (
	"database/sql"

	"adpulse/internal/interfaces"
)

// Store bundles the postgres repositories behind the single persistence
// contract the rest of the API is wired against.
type Store struct {
	*campaignRepository
	*metricRepository
	*templateRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		campaignRepository: NewCampaignRepository(db),
		metricRepository:   NewMetricRepository(db),
		templateRepository: NewTemplateRepository(db),
	}
}

var _ interfaces.Store = (*Store)(nil)
