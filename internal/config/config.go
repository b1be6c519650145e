// Package config resolves process-wide settings once at start-up.
// The result is a plain value handed to the screen and the API client;
// nothing below this package reads the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "https://newsapi.org"
	DefaultCountry = "us"
	DefaultTheme   = "classic"
)

// Config holds application configuration.
type Config struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Country  string        `mapstructure:"country"`
	Theme    string        `mapstructure:"theme"`
	Timeout  time.Duration `mapstructure:"timeout"` // 0 leaves the transport default
	DebugLog string        `mapstructure:"debug_log"`
}

// Load reads ./.env (if present), then an optional TOML file, then the
// environment. Env var overrides use prefix HEADLINES_.
func Load() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	if envFile != "" {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()

	v.SetDefault("api_key", "")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("country", DefaultCountry)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug_log", "")

	v.SetConfigType("toml")
	if p := os.Getenv("HEADLINES_CONFIG"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", p, err)
		}
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "headlines"))
		}
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("HEADLINES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// First non-empty wins; the Expo name keeps existing .env files working.
	if err := v.BindEnv("api_key", "HEADLINES_API_KEY", "NEWS_API_KEY", "EXPO_PUBLIC_NEWS_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.Country = strings.ToLower(strings.TrimSpace(c.Country))
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}
