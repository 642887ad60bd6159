// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. Both the bounty bot and the
// channel bot load the same shape; the channel bot ignores the payout section.
type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Database DatabaseConfig `mapstructure:"database"`
	Owners   OwnersConfig   `mapstructure:"owners"`
	Payout   PayoutConfig   `mapstructure:"payout"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// OwnersConfig holds the operator allow-list. Privileged commands are gated
// on the sender's Telegram username being in this list.
type OwnersConfig struct {
	Usernames []string `mapstructure:"usernames"`
}

// PayoutConfig holds the payout service configuration for the bounty bot.
type PayoutConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	Memo        string        `mapstructure:"memo"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ExplorerURL string        `mapstructure:"explorer_url"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. BOT_TOKEN, DATABASE_HOST, OWNERS_USERNAMES, PAYOUT_ENDPOINT.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - env vars can provide all config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "bountybot")
	v.SetDefault("database.name", "bountybot")
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	v.SetDefault("payout.memo", "TG Bounty reward")
	v.SetDefault("payout.timeout", "30s")
	v.SetDefault("payout.explorer_url", "https://www.mintscan.io/atomone/tx/")
}

// IsOwner checks if a username is in the owner allow-list.
func (c *Config) IsOwner(username string) bool {
	if username == "" {
		return false
	}
	for _, u := range c.Owners.Usernames {
		if u == username {
			return true
		}
	}
	return false
}
