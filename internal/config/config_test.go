package config

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"APP_ENV": "test", "APP_PORT": "8080", "DB_USER": "app", "DB_HOST": "localhost",
		"DB_PORT": "3306", "DB_NAME": "glassview", "JWT_SECRET": "s3cret",
	} {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "glassview-db", cfg.MongoDB)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "logs", cfg.AuditLogDir)
	assert.Empty(t, cfg.AMQPURL)
	assert.False(t, cfg.HasAdmin())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "5")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("AMQP_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "Sup3r-secret")
	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.AccessTTL())
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.AMQPURL)
	assert.True(t, cfg.HasAdmin())

	t.Setenv("RABBITMQ_URL", "amqp://primary/")
	assert.Equal(t, "amqp://primary/", Load().AMQPURL)
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()

	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL, "ttl is raised to five refill intervals")
	assert.Equal(t, "ip_user_route", cfg.KeyStrategy)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.Equal(t, "url", cfg.KeyStrategy)
	assert.Equal(t, 30*time.Second, cfg.TTL)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())

	client, err := NewRedisClient(LoadRedisConfig())
	require.NoError(t, err)
	defer client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(RedisConfig{Addr: addr})
	assert.Error(t, err)
}
