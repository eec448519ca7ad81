package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"recscope/internal/scope"
	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
)

const questionSetKeyPrefix = "scope:questions:"

// RedisQuestionCache keeps the filtered question set of the last refresh so
// readers can serve it without re-running the filter. The cache is advisory:
// a miss means the caller re-filters from the catalog, never that the scope
// is wrong.
type RedisQuestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisQuestionCache(client *redis.Client, ttl time.Duration) *RedisQuestionCache {
	return &RedisQuestionCache{client: client, ttl: ttl}
}

func (c *RedisQuestionCache) Save(ctx context.Context, assessmentID id.AssessmentID, result *scope.FilterResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode question set: %w", err)
	}
	key := questionSetKeyPrefix + assessmentID.String()
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache question set: %w", err)
	}
	return nil
}

func (c *RedisQuestionCache) Find(ctx context.Context, assessmentID id.AssessmentID) (*scope.FilterResult, error) {
	key := questionSetKeyPrefix + assessmentID.String()
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("question set %s: %w", assessmentID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch question set: %w", err)
	}
	var result scope.FilterResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}
	return &result, nil
}

// Invalidate drops the cached question set, typically alongside MarkStale.
func (c *RedisQuestionCache) Invalidate(ctx context.Context, assessmentID id.AssessmentID) error {
	key := questionSetKeyPrefix + assessmentID.String()
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("invalidate question set: %w", err)
	}
	return nil
}
