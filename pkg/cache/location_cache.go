package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// LocationCacheTTL is the time-to-live for cached locations.
	LocationCacheTTL = 24 * time.Hour

	locationCacheKeyPrefix = "location"
)

// CachedLocation is the denormalized location read model stored in Redis as
// a hash. ParentID is empty for root locations.
type CachedLocation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    string    `json:"parent_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LocationCache provides structured read/write operations for location
// cache entries. Key format: "location:{id}"
type LocationCache struct {
	client *RedisClient
}

// NewLocationCache creates a LocationCache backed by the given RedisClient.
func NewLocationCache(r *RedisClient) *LocationCache {
	return &LocationCache{client: r}
}

// Get retrieves a cached location by id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *LocationCache) Get(ctx context.Context, id string) (*CachedLocation, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	return &CachedLocation{
		ID:          vals["id"],
		Name:        vals["name"],
		Description: vals["description"],
		ParentID:    vals["parent_id"],
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Set writes a cached location as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *LocationCache) Set(ctx context.Context, loc *CachedLocation) error {
	key := c.key(loc.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", loc.ID,
		"name", loc.Name,
		"description", loc.Description,
		"parent_id", loc.ParentID,
		"created_at", loc.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", loc.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, LocationCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached location. Call after updates and deletes so stale
// hierarchy data never serves a read.
func (c *LocationCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *LocationCache) key(id string) string {
	return fmt.Sprintf("%s:%s", locationCacheKeyPrefix, id)
}
