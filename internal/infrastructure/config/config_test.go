package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 5000, cfg.Server.Port)
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "users.db", cfg.Database.Path)
		assert.Equal(t, 12, cfg.Auth.BcryptCost)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, "5-M", cfg.RateLimit.Login)
		assert.Equal(t, "100-H", cfg.RateLimit.Default)
		assert.Empty(t, cfg.Server.TrustedProxies)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DATABASE_PATH", "/tmp/test.db")
		t.Setenv("RATE_LIMIT_LOGIN", "3-M")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1,192.168.0.0/16")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
		assert.Equal(t, "3-M", cfg.RateLimit.Login)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.Server.TrustedProxies)
	})

	t.Run("postgres requires credentials", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("postgres dsn", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_USER", "app")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "users")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=users sslmode=disable", cfg.Database.DSN())
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("rejects unknown rate limit store", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_STORE", "memcached")

		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := config.RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.Addr())
}
