package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contabilisync/backend/models"
)

const (
	accountantsKey = "directory:accountants"
	accountantsTTL = 5 * time.Minute
)

// AccountantCache keeps the accountant directory listing in Redis for a short
// TTL. A nil *AccountantCache is valid and disables caching, so the directory
// works identically when no Redis address is configured.
type AccountantCache struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection.
func New(addr string) (*AccountantCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &AccountantCache{rdb: rdb}, nil
}

// Get returns the cached listing and whether it was present. Cache errors
// read as a miss; the caller falls through to the database.
func (c *AccountantCache) Get(ctx context.Context) ([]models.User, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, accountantsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var users []models.User
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, false
	}
	return users, true
}

func (c *AccountantCache) Set(ctx context.Context, users []models.User) {
	if c == nil {
		return
	}
	b, err := json.Marshal(users)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, accountantsKey, b, accountantsTTL).Err()
}

// Invalidate drops the cached listing. Called on every user write, since any
// of them can change the accountant directory.
func (c *AccountantCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, accountantsKey).Err()
}
