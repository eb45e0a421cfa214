// internal/repository/metric_repository.go
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"adpulse/internal/models"
)

type metricRepository struct {
	db *sql.DB
}

func NewMetricRepository(db *sql.DB) *metricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) AddMetricSample(ctx context.Context, m *models.MetricSample) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	query := `
		INSERT INTO campaign_metrics (
			id, campaign_id, date, impressions, clicks, conversions, cost
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		m.ID,
		m.CampaignID,
		m.Date,
		m.Impressions,
		m.Clicks,
		m.Conversions,
		m.Cost,
	)
	return err
}

func (r *metricRepository) ListMetricSamples(ctx context.Context, campaignID string) ([]*models.MetricSample, error) {
	query := `
		SELECT id, campaign_id, date, impressions, clicks, conversions, cost
		FROM campaign_metrics
		WHERE campaign_id = $1
		ORDER BY date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make([]*models.MetricSample, 0)
	for rows.Next() {
		var m models.MetricSample
		err := rows.Scan(
			&m.ID,
			&m.CampaignID,
			&m.Date,
			&m.Impressions,
			&m.Clicks,
			&m.Conversions,
			&m.Cost,
		)
		if err != nil {
			return nil, err
		}
		samples = append(samples, &m)
	}
	return samples, rows.Err()
}
