package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "theoryline", cfg.Database.DBName)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "full", cfg.Engine.FeatureMode)
	assert.Equal(t, 500, cfg.Engine.BatchSize)
	assert.Equal(t, "15m", cfg.Engine.SignalTTL)
	assert.Equal(t, "7d", cfg.Engine.TrendWindow)
	assert.Equal(t, 5, cfg.Engine.SMAPeriod)
	assert.Equal(t, "nba", cfg.Engine.DefaultLeague)
	assert.Equal(t, []string{"2024", "2025"}, cfg.Engine.Seasons)
	assert.Equal(t, 0, cfg.Engine.MaxConcurrency)
	assert.Equal(t, "30s", cfg.Cache.OddsTTL)
}

func TestLoad_EnvironmentNormalized(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ENVIRONMENT", "PRODUCTION")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoad_InvalidFeatureMode(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ENGINE_FEATURE_MODE", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature_mode")
}

func TestLoad_InvalidSignalTTL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ENGINE_SIGNAL_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signal_ttl")
}

func TestLoad_NegativeBatchSize(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ENGINE_BATCH_SIZE", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")
}

func TestEngineConfig_SignalTTLDuration(t *testing.T) {
	assert.Equal(t, 10*time.Minute, EngineConfig{SignalTTL: "10m"}.SignalTTLDuration())
	assert.Equal(t, 15*time.Minute, EngineConfig{SignalTTL: ""}.SignalTTLDuration())
	assert.Equal(t, 15*time.Minute, EngineConfig{SignalTTL: "-5m"}.SignalTTLDuration())
}

func TestCacheConfig_OddsTTLDuration(t *testing.T) {
	assert.Equal(t, time.Minute, CacheConfig{OddsTTL: "1m"}.OddsTTLDuration())
	assert.Equal(t, 30*time.Second, CacheConfig{OddsTTL: "garbage"}.OddsTTLDuration())
}
