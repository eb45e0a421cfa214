// internal/repository/campaign_repository.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) *campaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `
	id, user_id, name, objective, platforms, status, daily_budget,
	total_budget, spent, duration, target_audience, ad_creative,
	external_id, created_at, updated_at
`

func (r *campaignRepository) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}
	audience, err := marshalNullable(c.TargetAudience)
	if err != nil {
		return fmt.Errorf("encode target audience: %w", err)
	}
	creative, err := marshalNullable(c.AdCreative)
	if err != nil {
		return fmt.Errorf("encode ad creative: %w", err)
	}

	query := `
		INSERT INTO campaigns (
			id, user_id, name, objective, platforms, status, daily_budget,
			total_budget, spent, duration, target_audience, ad_creative, external_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx,
		query,
		c.ID,
		c.UserID,
		c.Name,
		c.Objective,
		pq.Array(c.Platforms),
		c.Status,
		c.DailyBudget,
		c.TotalBudget,
		c.Spent,
		c.Duration,
		audience,
		creative,
		c.ExternalID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *campaignRepository) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrCampaignNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) ListCampaigns(ctx context.Context, userID string) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) UpdateCampaign(ctx context.Context, id string, update interfaces.CampaignUpdate) (*models.Campaign, error) {
	existing, err := r.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Status != nil {
		existing.Status = *update.Status
	}
	if update.DailyBudget != nil {
		existing.DailyBudget = *update.DailyBudget
	}
	if update.TotalBudget != nil {
		existing.TotalBudget = *update.TotalBudget
	}
	if update.Spent != nil {
		existing.Spent = *update.Spent
	}
	if update.Duration != nil {
		existing.Duration = *update.Duration
	}
	if update.TargetAudience != nil {
		existing.TargetAudience = update.TargetAudience
	}
	if update.AdCreative != nil {
		existing.AdCreative = update.AdCreative
	}
	if update.ExternalID != nil {
		existing.ExternalID = *update.ExternalID
	}

	audience, err := marshalNullable(existing.TargetAudience)
	if err != nil {
		return nil, fmt.Errorf("encode target audience: %w", err)
	}
	creative, err := marshalNullable(existing.AdCreative)
	if err != nil {
		return nil, fmt.Errorf("encode ad creative: %w", err)
	}

	query := `
		UPDATE campaigns
		SET name = $1,
			status = $2,
			daily_budget = $3,
			total_budget = $4,
			spent = $5,
			duration = $6,
			target_audience = $7,
			ad_creative = $8,
			external_id = $9,
			updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $10
		RETURNING updated_at
	`
	err = r.db.QueryRowContext(
		ctx,
		query,
		existing.Name,
		existing.Status,
		existing.DailyBudget,
		existing.TotalBudget,
		existing.Spent,
		existing.Duration,
		audience,
		creative,
		existing.ExternalID,
		id,
	).Scan(&existing.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return existing, nil
}

func (r *campaignRepository) DeleteCampaign(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return interfaces.ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepository) DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	query := `
		SELECT
			COALESCE(SUM(m.impressions), 0) AS total_impressions,
			COALESCE(SUM(m.clicks), 0) AS total_clicks,
			COALESCE(SUM(m.cost), 0) AS total_cost,
			COALESCE(SUM(CASE WHEN c.status = 'active' THEN 1 ELSE 0 END), 0) AS active_campaigns,
			COALESCE(SUM(c.spent), 0) AS total_spent,
			COALESCE(SUM(CASE WHEN c.total_budget > 0 THEN c.total_budget ELSE c.daily_budget * c.duration END), 0) AS total_budget
		FROM campaigns c
		LEFT JOIN campaign_metrics m ON m.campaign_id = c.id
		WHERE c.user_id = $1
	`
	var stats models.DashboardStats
	var totalCost, totalBudget float64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalImpressions,
		&stats.TotalClicks,
		&totalCost,
		&stats.ActiveCampaigns,
		&stats.TotalSpent,
		&totalBudget,
	)
	if err != nil {
		return nil, err
	}
	if stats.TotalImpressions > 0 {
		stats.AvgCTR = float64(stats.TotalClicks) / float64(stats.TotalImpressions)
	}
	if stats.TotalClicks > 0 {
		stats.AvgCPC = totalCost / float64(stats.TotalClicks)
	}
	stats.BudgetRemaining = totalBudget - stats.TotalSpent
	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var c models.Campaign
	var audience, creative []byte
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Objective,
		pq.Array(&c.Platforms),
		&c.Status,
		&c.DailyBudget,
		&c.TotalBudget,
		&c.Spent,
		&c.Duration,
		&audience,
		&creative,
		&c.ExternalID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(audience) > 0 {
		c.TargetAudience = &models.TargetAudience{}
		if err := json.Unmarshal(audience, c.TargetAudience); err != nil {
			return nil, fmt.Errorf("decode target audience: %w", err)
		}
	}
	if len(creative) > 0 {
		c.AdCreative = &models.AdCreative{}
		if err := json.Unmarshal(creative, c.AdCreative); err != nil {
			return nil, fmt.Errorf("decode ad creative: %w", err)
		}
	}
	return &c, nil
}

func marshalNullable(v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case *models.TargetAudience:
		if val == nil {
			return nil, nil
		}
	case *models.AdCreative:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
