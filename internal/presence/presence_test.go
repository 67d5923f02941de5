package presence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/config"
)

func testPresence(t *testing.T) *RedisPresence {
	if os.Getenv("REDIS_INTEGRATION") == "" {
		t.Skip("set REDIS_INTEGRATION=1 and run a local redis to enable")
	}

	cnf := &config.Config{
		Redis: config.RedisConfig{
			Host: getEnvOrDefault("REDIS_HOST", "localhost"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Presence: config.PresenceConfig{TTLSeconds: 2},
	}

	client := NewRedisClient(cnf)
	require.NoError(t, client.Ping(context.Background()).Err(),
		"Failed to connect to redis - ensure it is running")

	return NewRedisPresence(client, cnf)
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func TestRedisPresence_OnlineOfflineCycle(t *testing.T) {
	p := testPresence(t)
	ctx := context.Background()

	assert.False(t, p.IsReachable(ctx, "user-presence-test"))

	require.NoError(t, p.SetOnline(ctx, "user-presence-test"))
	assert.True(t, p.IsReachable(ctx, "user-presence-test"))

	require.NoError(t, p.SetOffline(ctx, "user-presence-test"))
	assert.False(t, p.IsReachable(ctx, "user-presence-test"))
}

func TestRedisPresence_KeyExpires(t *testing.T) {
	p := testPresence(t)
	ctx := context.Background()

	require.NoError(t, p.SetOnline(ctx, "user-expiry-test"))
	assert.True(t, p.IsReachable(ctx, "user-expiry-test"))

	time.Sleep(2500 * time.Millisecond)
	assert.False(t, p.IsReachable(ctx, "user-expiry-test"))
}

func TestRedisPresence_ErrorReadsAsOffline(t *testing.T) {
	// A client pointed at a dead address must degrade to unreachable.
	cnf := &config.Config{
		Redis:    config.RedisConfig{Host: "127.0.0.1", Port: "1"},
		Presence: config.PresenceConfig{TTLSeconds: 60},
	}
	p := NewRedisPresence(NewRedisClient(cnf), cnf)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	assert.False(t, p.IsReachable(ctx, "anyone"))
}
