package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
	"adpulse/internal/optimizer"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func redisTestRecommendation(ruleID string) models.Recommendation {
	return models.Recommendation{
		CampaignID: "c1",
		Rule:       models.RuleInfo{ID: ruleID, Name: ruleID, Priority: 5},
		Action: models.OptimizationAction{
			Type:       models.ActionBudgetIncrease,
			Value:      20,
			Confidence: 0.85,
		},
		Timestamp: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRedisLogAppendAndList(t *testing.T) {
	log := NewRedisRecommendationLog(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, "c1", []models.Recommendation{
		redisTestRecommendation("r1"),
		redisTestRecommendation("r2"),
	}))
	require.NoError(t, log.Append(ctx, "c1", []models.Recommendation{
		redisTestRecommendation("r3"),
	}))
	require.NoError(t, log.Append(ctx, "c1", nil))

	entries, err := log.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "r1", entries[0].Rule.ID)
	assert.Equal(t, "r3", entries[2].Rule.ID)
	assert.Equal(t, models.ActionBudgetIncrease, entries[0].Action.Type)
	assert.True(t, entries[0].Timestamp.Equal(redisTestRecommendation("r1").Timestamp))

	empty, err := log.List(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRedisLogMarkApplied(t *testing.T) {
	log := NewRedisRecommendationLog(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, "c1", []models.Recommendation{
		redisTestRecommendation("r1"),
		redisTestRecommendation("r2"),
	}))

	require.NoError(t, log.MarkApplied(ctx, "c1", 1))
	entries, err := log.List(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, entries[0].Applied)
	assert.True(t, entries[1].Applied)

	err = log.MarkApplied(ctx, "c1", 1)
	assert.ErrorIs(t, err, optimizer.ErrAlreadyApplied)
}

func TestRedisLogMarkAppliedOutOfRange(t *testing.T) {
	log := NewRedisRecommendationLog(setupTestRedis(t))
	ctx := context.Background()

	var vErr *interfaces.ValidationError
	err := log.MarkApplied(ctx, "c1", 0)
	require.Error(t, err)
	assert.ErrorAs(t, err, &vErr)

	require.NoError(t, log.Append(ctx, "c1", []models.Recommendation{
		redisTestRecommendation("r1"),
	}))
	assert.Error(t, log.MarkApplied(ctx, "c1", 7))
}

func TestRedisLogDrivesEngineApply(t *testing.T) {
	client := setupTestRedis(t)
	store := NewMemoryStore()
	ctx := context.Background()

	c := newCampaign("u1", "redis-backed")
	require.NoError(t, store.CreateCampaign(ctx, c))
	for i := 1; i <= 7; i++ {
		require.NoError(t, store.AddMetricSample(ctx, &models.MetricSample{
			CampaignID:  c.ID,
			Date:        time.Date(2026, time.March, i, 0, 0, 0, 0, time.UTC),
			Impressions: 1000,
			Clicks:      40,
			Conversions: 1,
			Cost:        20,
		}))
	}

	e := optimizer.NewEngine(store, NewRedisRecommendationLog(client), nil)
	recs, err := e.OptimizeCampaign(ctx, c.ID)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	require.Equal(t, models.ActionBudgetIncrease, recs[0].Action.Type)

	require.True(t, e.ApplyRecommendation(ctx, c.ID, 0))
	assert.False(t, e.ApplyRecommendation(ctx, c.ID, 0))

	got, err := store.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, got.DailyBudget, 1e-9)
}
