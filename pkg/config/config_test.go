package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load(slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.Jwt.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Jwt.Expiry)
	assert.Equal(t, "https://www.cbr-xml-daily.ru/daily_json.js", cfg.Rates.Url)
	assert.Equal(t, "0 1 * * *", cfg.Rates.RefreshSpec)
	assert.Equal(t, "account_operations", cfg.Kafka.Topic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("RATES_CACHE_TTL", "5m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := config.Load(slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Rates.CacheTTL)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadRequiresJwtSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "placeholder") // register cleanup, then drop the variable
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := config.Load(slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}
