package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
)

const profileKeyPrefix = "profile:"

// ProfileSource is the underlying point lookup against the users collection.
type ProfileSource interface {
	GetUser(ctx context.Context, uid string) (*models.UserProfile, error)
}

// ProfileCache puts a Redis TTL cache in front of owner-profile lookups.
// Every record in an orders or reservations snapshot triggers a lookup of its
// owner, and the same handful of regulars shows up in most snapshots, so the
// cache absorbs the bulk of the enrichment reads. A cache or Redis failure is
// never fatal: the lookup falls through to the source.
type ProfileCache struct {
	Client *redis.Client
	Source ProfileSource
	TTL    time.Duration
	Logger *logger.Logger
}

func NewProfileCache(client *redis.Client, source ProfileSource, ttl time.Duration, log *logger.Logger) *ProfileCache {
	return &ProfileCache{Client: client, Source: source, TTL: ttl, Logger: log}
}

func (c *ProfileCache) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	if c.Client != nil {
		raw, err := c.Client.Get(ctx, profileKeyPrefix+uid).Result()
		if err == nil {
			var profile models.UserProfile
			if jsonErr := json.Unmarshal([]byte(raw), &profile); jsonErr == nil {
				return &profile, nil
			}
			// Corrupt entry, drop it and fall through
			c.Client.Del(ctx, profileKeyPrefix+uid)
		} else if err != redis.Nil {
			c.Logger.Warn("CACHE", fmt.Sprintf("profile cache read for %s failed: %v", uid, err))
		}
	}

	profile, err := c.Source.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	c.put(ctx, uid, profile)
	return profile, nil
}

func (c *ProfileCache) put(ctx context.Context, uid string, profile *models.UserProfile) {
	if c.Client == nil {
		return
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, profileKeyPrefix+uid, raw, c.TTL).Err(); err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("profile cache write for %s failed: %v", uid, err))
	}
}

// Invalidate drops one cached profile, used when a profile document changes
// in a users snapshot.
func (c *ProfileCache) Invalidate(ctx context.Context, uid string) {
	if c.Client == nil {
		return
	}
	c.Client.Del(ctx, profileKeyPrefix+uid)
}

// InitializeRedis creates the Redis client for profile caching and verifies
// the connection.
func InitializeRedis(addr string, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, errs.Wrap(errs.KindTransient, fmt.Sprintf("failed to connect to Redis at %s", addr), err)
	}

	log.Info("CACHE", fmt.Sprintf("Connected to Redis at %s for profile caching", addr))
	return client, nil
}
