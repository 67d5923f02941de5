// Package presence tracks which users currently hold a live connection.
// Presence is a TTL'd redis key per user, written by the transport layer
// and read by fan-out. A missing key, an expired key and a redis failure
// all read as "unreachable" - presence never blocks message persistence.
package presence

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"chatapp/internal/common"
	"chatapp/internal/config"
)

const presenceKeyPrefix = "chatapp:presence:"

type RedisPresence struct {
	client *redis.Client
	ttl    time.Duration
}

var _ common.PresenceOracle = (*RedisPresence)(nil)
var _ common.PresenceRegistry = (*RedisPresence)(nil)

func NewRedisClient(cnf *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cnf.RedisAddr(),
		Password: cnf.Redis.Password,
		DB:       cnf.Redis.DB,
	})
}

func NewRedisPresence(client *redis.Client, cnf *config.Config) *RedisPresence {
	ttl := time.Duration(cnf.Presence.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &RedisPresence{client: client, ttl: ttl}
}

// IsReachable reports whether the user has a fresh presence key. Errors
// degrade to unreachable so the recipient falls into the queued partition.
func (p *RedisPresence) IsReachable(ctx context.Context, userID string) bool {
	exists, err := p.client.Exists(ctx, presenceKeyPrefix+userID).Result()
	if err != nil {
		log.Printf("presence check failed for user %s, treating as offline: %v", userID, err)
		return false
	}
	return exists > 0
}

func (p *RedisPresence) SetOnline(ctx context.Context, userID string) error {
	return p.client.Set(ctx, presenceKeyPrefix+userID, time.Now().Unix(), p.ttl).Err()
}

func (p *RedisPresence) SetOffline(ctx context.Context, userID string) error {
	return p.client.Del(ctx, presenceKeyPrefix+userID).Err()
}

// Refresh extends the key lifetime; the websocket hub calls this on every
// ping so an idle-but-connected user stays reachable.
func (p *RedisPresence) Refresh(ctx context.Context, userID string) error {
	return p.client.Expire(ctx, presenceKeyPrefix+userID, p.ttl).Err()
}
