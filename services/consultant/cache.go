package consultant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ScheduleCache stores rendered schedule projections keyed by consultant and
// viewer zone. A nil cache is valid and disables caching.
type ScheduleCache interface {
	Get(ctx context.Context, key string) ([]ScheduleDay, bool)
	Set(ctx context.Context, key string, days []ScheduleDay)
	Invalidate(ctx context.Context, consultantID string)
}

const scheduleCacheTTL = 10 * time.Minute

type redisScheduleCache struct {
	client *redis.Client
}

func NewRedisScheduleCache(client *redis.Client) ScheduleCache {
	return &redisScheduleCache{client: client}
}

func scheduleKey(consultantID, viewerTZ string) string {
	return fmt.Sprintf("schedule:%s:%s", consultantID, viewerTZ)
}

func (c *redisScheduleCache) Get(ctx context.Context, key string) ([]ScheduleDay, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var days []ScheduleDay
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *redisScheduleCache) Set(ctx context.Context, key string, days []ScheduleDay) {
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, scheduleCacheTTL)
}

func (c *redisScheduleCache) Invalidate(ctx context.Context, consultantID string) {
	iter := c.client.Scan(ctx, 0, scheduleKey(consultantID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
