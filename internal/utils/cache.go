package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys for catalog reads. Every search variant lives under the
// SweetsKeyPrefix so one scan invalidates all of them.
const (
	SweetsKeyPrefix = "sweets:"        // Prefix shared by all catalog cache keys
	SweetsAllKey    = "sweets:all"     // Full catalog listing
	SweetsSearchKey = "sweets:search:" // Search result prefix, suffixed with the raw query
	CacheTTL        = 60 * time.Second // Catalog cache lifetime
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// InvalidateSweetCache drops every cached catalog listing and search
// result. Called after any mutation that changes a sweet.
func InvalidateSweetCache(ctx context.Context, rdb *redis.Client) error {
	var cursor uint64 // Scan cursor
	for {
		// Scan for catalog cache keys in batches
		keys, next, err := rdb.Scan(ctx, cursor, SweetsKeyPrefix+"*", 100).Result()
		if err != nil {
			return err // Propagate Redis errors to the caller
		}
		// Delete the batch if non-empty
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next // Advance the cursor
		// Cursor 0 means the scan is complete
		if cursor == 0 {
			return nil
		}
	}
}
