// Package config collects all runtime configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	APIHost string `mapstructure:"api_host"` // Address the HTTP server binds to
	DBDSN   string `mapstructure:"db_dsn"`   // Database connection string

	JWTSecret string `mapstructure:"jwt_secret"`

	CORSAllowOrigins string `mapstructure:"cors_allow_origins"` // Space separated list of allowed origins

	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	BotAuthURL       string `mapstructure:"bot_auth_url"` // Where unlinked bot users are sent to log in

	RedisAddr     string        `mapstructure:"redis_addr"` // When set, bot sessions live in redis instead of memory
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`

	EnablePprof bool   `mapstructure:"enable_pprof"`
	LogFormat   string `mapstructure:"log_format"` // "json" or "human"
	GinMode     string `mapstructure:"gin_mode"`
}

// Load reads the configuration from a .env file (when present) and the
// environment. Environment variables take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_host", ":8080")
	v.SetDefault("db_dsn", "data/catatduitmu.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("cors_allow_origins", "")
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("bot_auth_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("session_ttl", 10*time.Minute)
	v.SetDefault("enable_pprof", false)
	v.SetDefault("log_format", "json")
	v.SetDefault("gin_mode", "release")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
