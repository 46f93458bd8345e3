package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the process reads from the environment. An
// optional .env file in the working directory is merged in when present.
type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	StatsRefreshInterval time.Duration `mapstructure:"STATS_REFRESH_INTERVAL"`
}

// CacheEnabled reports whether Redis has been configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// StorageEnabled reports whether MinIO has been configured.
func (c *Config) StorageEnabled() bool {
	return c.MinioEndpoint != ""
}

// Load reads configuration from the environment, merging in a .env file
// when one exists. DATABASE_URL is the only required setting.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "sweet-images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("STATS_REFRESH_INTERVAL", 5*time.Minute)

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}
