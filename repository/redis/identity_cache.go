package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskgo/backend/domain"
	"github.com/taskgo/backend/repository"
)

type identityCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewIdentityCache creates a Redis-backed token-to-account cache. Entries
// expire after ttl; the accounts table stays the source of truth.
func NewIdentityCache(client *redislib.Client, ttl time.Duration) repository.IdentityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &identityCache{
		client: client,
		prefix: "identity:",
		ttl:    ttl,
	}
}

func (c *identityCache) Get(ctx context.Context, token string) (*domain.User, error) {
	result, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(result), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *identityCache) Set(ctx context.Context, token string, user *domain.User) error {
	if token == "" || user == nil {
		return domain.ErrInvalidData
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.key(token), payload, c.ttl).Err()
}

func (c *identityCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}

func (c *identityCache) key(token string) string {
	return fmt.Sprintf("%s%s", c.prefix, token)
}
