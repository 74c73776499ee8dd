package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/task-assignment-api/internal/config"
	"github.com/yukikurage/task-assignment-api/internal/constants"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/models"
)

// TaskDetailsCache is a cache-aside store for task details backed by Redis.
// A disabled cache misses on every read and ignores writes, so callers never
// need to check whether Redis is configured.
type TaskDetailsCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
	log     *logger.Logger
}

// New connects to the configured Redis URL. A missing URL, an unparseable
// URL or a failed ping all yield a disabled cache.
func New(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) *TaskDetailsCache {
	c := &TaskDetailsCache{ttl: cfg.TTL, log: log}

	if !cfg.Enabled() {
		log.Info().Msg("Redis URL not provided, task details caching disabled")
		return c
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to parse Redis URL, task details caching disabled")
		return c
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, task details caching disabled")
		_ = client.Close()
		return c
	}

	c.client = client
	c.enabled = true
	log.Info().Msg("Redis task details cache initialized")
	return c
}

// Enabled reports whether reads and writes reach Redis.
func (c *TaskDetailsCache) Enabled() bool {
	return c.enabled
}

func taskDetailsKey(taskID string) string {
	return constants.TaskDetailsCacheKeyPrefix + taskID
}

// GetTaskDetails returns the cached details for taskID, if any.
func (c *TaskDetailsCache) GetTaskDetails(ctx context.Context, taskID string) (*models.TaskDetails, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.client.Get(ctx, taskDetailsKey(taskID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("task_id", taskID).Msg("task details cache read failed")
		}
		return nil, false
	}

	var details models.TaskDetails
	if err := json.Unmarshal(data, &details); err != nil {
		c.log.Warn().Err(err).Str("task_id", taskID).Msg("discarding undecodable task details cache entry")
		return nil, false
	}
	return &details, true
}

// SetTaskDetails stores details under the task's id for the configured TTL.
func (c *TaskDetailsCache) SetTaskDetails(ctx context.Context, details *models.TaskDetails) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(details)
	if err != nil {
		c.log.Warn().Err(err).Str("task_id", details.ID).Msg("task details cache encode failed")
		return
	}
	if err := c.client.Set(ctx, taskDetailsKey(details.ID), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("task_id", details.ID).Msg("task details cache write failed")
	}
}

// InvalidateTask drops any cached details for taskID.
func (c *TaskDetailsCache) InvalidateTask(ctx context.Context, taskID string) {
	if !c.Enabled() {
		return
	}

	if err := c.client.Del(ctx, taskDetailsKey(taskID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("task_id", taskID).Msg("task details cache invalidation failed")
	}
}

// Close closes the Redis connection.
func (c *TaskDetailsCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
