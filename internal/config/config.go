package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Engine      EngineConfig   `mapstructure:"engine"`
	Cache       CacheConfig    `mapstructure:"cache"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EngineConfig tunes the evaluation pipelines.
type EngineConfig struct {
	FeatureMode    string   `mapstructure:"feature_mode"`
	BatchSize      int      `mapstructure:"batch_size"`
	SignalTTL      string   `mapstructure:"signal_ttl"`
	TrendWindow    string   `mapstructure:"trend_window"`
	SMAPeriod      int      `mapstructure:"sma_period"`
	DefaultLeague  string   `mapstructure:"default_league"`
	Seasons        []string `mapstructure:"seasons"`
	MaxConcurrency int      `mapstructure:"max_concurrency"`
}

// CacheConfig tunes the Redis odds-snapshot cache.
type CacheConfig struct {
	OddsTTL string `mapstructure:"odds_ttl"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	config.Environment = strings.ToLower(config.Environment)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(cfg *Config) error {
	switch cfg.Engine.FeatureMode {
	case "minimal", "full", "admin":
	default:
		return fmt.Errorf("invalid engine.feature_mode %q (want minimal, full, or admin)", cfg.Engine.FeatureMode)
	}

	for name, raw := range map[string]string{
		"engine.signal_ttl":          cfg.Engine.SignalTTL,
		"cache.odds_ttl":             cfg.Cache.OddsTTL,
		"database.conn_max_lifetime": cfg.Database.ConnMaxLifetime,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid %s duration: %w", name, err)
		}
	}

	if cfg.Engine.BatchSize < 0 {
		return fmt.Errorf("engine.batch_size must not be negative, got %d", cfg.Engine.BatchSize)
	}

	return nil
}

// SignalTTLDuration returns the live-signal lifetime as a duration.
func (c EngineConfig) SignalTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.SignalTTL)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// OddsTTLDuration returns the odds-cache lifetime as a duration.
func (c CacheConfig) OddsTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.OddsTTL)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Set database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "theoryline")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.conn_max_lifetime", "300s")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Engine
	viper.SetDefault("engine.feature_mode", "full")
	viper.SetDefault("engine.batch_size", 500)
	viper.SetDefault("engine.signal_ttl", "15m")
	viper.SetDefault("engine.trend_window", "7d")
	viper.SetDefault("engine.sma_period", 5)
	viper.SetDefault("engine.default_league", "nba")
	viper.SetDefault("engine.seasons", []string{"2024", "2025"})
	viper.SetDefault("engine.max_concurrency", 0)

	// Cache
	viper.SetDefault("cache.odds_ttl", "30s")
}
