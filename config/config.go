package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to start. Values come from
// config.yaml (optional) overridden by PLUME_* environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Minio    MinioConfig    `mapstructure:"minio"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug | release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type FeedConfig struct {
	PageSize int           `mapstructure:"page_size"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	PublicURL string `mapstructure:"public_url"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

// TracingConfig points at an OTLP/HTTP collector; empty means disabled.
type TracingConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// Load reads configuration with sane local-dev defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "plume.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("feed.page_size", 10)
	v.SetDefault("feed.cache_ttl", 20*time.Second)
	v.SetDefault("auth.jwt_secret", "dev-only-secret")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access_key", "minioadmin")
	v.SetDefault("minio.secret_key", "minioadmin")
	v.SetDefault("minio.bucket", "plume-media")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.public_url", "http://localhost:9000")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("tracing.endpoint", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PLUME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional; env + defaults are enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
