package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factory/internal/core/domain/model/plant"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "factory.orders", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.BrokerList())
	assert.True(t, cfg.Jobs.Enabled)

	plantConfig, err := cfg.PlantConfig()
	require.NoError(t, err)
	defaults := plant.DefaultSettings()
	assert.Equal(t, defaults.LotSizeThreshold, plantConfig.LotSizeThreshold())
	assert.Equal(t, defaults.ModulesDepot, plantConfig.ModulesDepot())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE", StoreMemory)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVICES_TIMEOUT", "750ms")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("PLANT_LOT_SIZE_THRESHOLD", "7")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Contains(t, cfg.DB.DSN(), "host=db.internal")
	assert.Equal(t, 750*time.Millisecond, cfg.Services.Timeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.BrokerList())

	plantConfig, err := cfg.PlantConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, plantConfig.LotSizeThreshold())
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("KAFKA_CLIENT_ID=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("KAFKA_CLIENT_ID") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Kafka.ClientID)
}

func TestLoadConfig_RejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "sqlite")

	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewLogger("loud", "json")
	require.Error(t, err)
}
