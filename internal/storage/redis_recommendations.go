// internal/storage/redis_recommendations.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
	"adpulse/internal/optimizer"
)

const recommendationKeyPrefix = "adpulse:recommendations:"

// RedisRecommendationLog keeps the per-campaign recommendation log in a redis
// list of JSON entries, so it survives process restarts and can be shared by
// several API instances.
type RedisRecommendationLog struct {
	client *redis.Client
}

func NewRedisRecommendationLog(client *redis.Client) *RedisRecommendationLog {
	return &RedisRecommendationLog{client: client}
}

var _ optimizer.RecommendationLog = (*RedisRecommendationLog)(nil)

func recKey(campaignID string) string {
	return recommendationKeyPrefix + campaignID
}

func (l *RedisRecommendationLog) Append(ctx context.Context, campaignID string, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(recs))
	for _, rec := range recs {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal recommendation: %w", err)
		}
		values = append(values, b)
	}
	if err := l.client.RPush(ctx, recKey(campaignID), values...).Err(); err != nil {
		return &interfaces.ExternalServiceError{Service: "redis", Op: "append recommendations", Err: err}
	}
	return nil
}

func (l *RedisRecommendationLog) List(ctx context.Context, campaignID string) ([]models.Recommendation, error) {
	raw, err := l.client.LRange(ctx, recKey(campaignID), 0, -1).Result()
	if err != nil {
		return nil, &interfaces.ExternalServiceError{Service: "redis", Op: "list recommendations", Err: err}
	}
	out := make([]models.Recommendation, 0, len(raw))
	for _, item := range raw {
		var rec models.Recommendation
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal recommendation: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (l *RedisRecommendationLog) MarkApplied(ctx context.Context, campaignID string, index int) error {
	raw, err := l.client.LIndex(ctx, recKey(campaignID), int64(index)).Result()
	if err == redis.Nil {
		return &interfaces.ValidationError{Field: "index", Message: "recommendation index out of range"}
	}
	if err != nil {
		return &interfaces.ExternalServiceError{Service: "redis", Op: "read recommendation", Err: err}
	}
	var rec models.Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return fmt.Errorf("unmarshal recommendation: %w", err)
	}
	if rec.Applied {
		return optimizer.ErrAlreadyApplied
	}
	rec.Applied = true
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}
	if err := l.client.LSet(ctx, recKey(campaignID), int64(index), b).Err(); err != nil {
		return &interfaces.ExternalServiceError{Service: "redis", Op: "mark applied", Err: err}
	}
	return nil
}
