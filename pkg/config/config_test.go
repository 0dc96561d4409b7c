package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_EMAIL_VERIFICATION_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_PASSWORD", "postgres")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)

	assert.Equal(t, "seller", cfg.Shop.SellerRole)
	assert.Equal(t, 5, cfg.Shop.PaymentDueDays)
	assert.Equal(t, "0 9 * * *", cfg.Shop.ReminderCronSpec)
	assert.Equal(t, 20, cfg.Shop.PageSize)
	assert.Equal(t, 10, cfg.Shop.StatsDefaultLimit)
	assert.Equal(t, 100, cfg.Shop.StatsMaxLimit)

	assert.Equal(t, "localhost", cfg.Redis.RedisHost)
	assert.Equal(t, 5, cfg.Redis.DialTimeoutSec)
	assert.Equal(t, 3, cfg.Redis.ReadTimeoutSec)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5, cfg.Redis.MinIdleConns)
}

func TestLoadRedisOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_DIAL_TIMEOUT_SEC", "10")
	t.Setenv("REDIS_POOL_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Redis.DialTimeoutSec)
	assert.Equal(t, 50, cfg.Redis.PoolSize)
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveDueDays(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHOP_PAYMENT_DUE_DAYS", "0")

	_, err := Load()
	require.Error(t, err)
}
