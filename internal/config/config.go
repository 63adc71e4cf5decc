package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type MarketConfig struct {
	APIKey         string `mapstructure:"api_key"`
	TTLMinutes     int    `mapstructure:"ttl_minutes"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxAttempts    int    `mapstructure:"max_attempts"`
}

// TTL returns how long a cached quote stays fresh.
func (m MarketConfig) TTL() time.Duration {
	return time.Duration(m.TTLMinutes) * time.Minute
}

// Timeout returns the per-endpoint timeout for provider calls.
func (m MarketConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type AppSubConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Market   MarketConfig   `mapstructure:"market"`
	Backup   BackupConfig   `mapstructure:"backup"`
	App      AppSubConfig   `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("server.address", "127.0.0.1")
		v.SetDefault("server.port", 8080)
		v.SetDefault("database.path", "data/pivot.db")
		v.SetDefault("market.ttl_minutes", 15)
		v.SetDefault("market.timeout_seconds", 5)
		v.SetDefault("market.max_attempts", 3)
		v.SetDefault("backup.dir", "backups")
		v.SetDefault("app.page_size", 20)

		// environment overrides, e.g. PIVOT_SERVER_PORT=9000
		v.SetEnvPrefix("PIVOT")
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			// a missing config file is fine, defaults cover everything
			if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil {
				err = fmt.Errorf("read config: %w", readErr)
				return
			}
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		// the provider secret lives in the environment (.env), never in yaml
		if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
			c.Market.APIKey = key
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
