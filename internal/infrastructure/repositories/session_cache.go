package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/learnsvc/domain"
)

// SessionCacheImpl implements domain.SessionCache using Redis. The entry
// TTL matches the refresh-token lifetime: removing the entry is what
// invalidates an otherwise still-valid refresh token.
type SessionCacheImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client, ttl time.Duration) domain.SessionCache {
	return &SessionCacheImpl{
		client: client,
		prefix: "session:user:",
		ttl:    ttl,
	}
}

// Save implements domain.SessionCache. The snapshot is overwritten and its
// TTL restarted on every call. PasswordHash is dropped by its json tag.
func (c *SessionCacheImpl) Save(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), data, c.ttl).Err()
}

// Find implements domain.SessionCache
func (c *SessionCacheImpl) Find(ctx context.Context, userID uint) (*domain.User, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}
	return &user, nil
}

// Delete implements domain.SessionCache. Deleting an absent entry is not
// an error; logout stays idempotent.
func (c *SessionCacheImpl) Delete(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *SessionCacheImpl) key(userID uint) string {
	return fmt.Sprintf("%s%d", c.prefix, userID)
}
