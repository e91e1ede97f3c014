package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Widget    WidgetConfig    `mapstructure:"widget"`
	Counter   CounterConfig   `mapstructure:"counter"`
	NATS      NATSConfig      `mapstructure:"nats"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Session   SessionConfig   `mapstructure:"session"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Title   string `mapstructure:"title"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dev   bool   `mapstructure:"dev"`
}

// WidgetConfig controls how many widgets the page mounts and how they render.
type WidgetConfig struct {
	Instances  int  `mapstructure:"instances"`
	InertItems bool `mapstructure:"inert_items"`
}

type CounterConfig struct {
	Start int64 `mapstructure:"start"`
}

// NATSConfig enables the embedded NATS bus when Dir is set.
type NATSConfig struct {
	Dir string `mapstructure:"dir"`
}

// RateLimitConfig is the per-context action limit. Zero keeps the engine
// defaults; a negative rate disables limiting.
type RateLimitConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

type SessionConfig struct {
	Cookie string `mapstructure:"cookie"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// ADDLIST_, e.g. ADDLIST_SERVER_ADDRESS.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.title", "Add list")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dev", false)
	v.SetDefault("widget.instances", 1)
	v.SetDefault("widget.inert_items", false)
	v.SetDefault("counter.start", 0)
	v.SetDefault("nats.dir", "")
	v.SetDefault("ratelimit.rate", 0)
	v.SetDefault("ratelimit.burst", 0)
	v.SetDefault("session.cookie", "addlist_session")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ADDLIST_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "addlist"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ADDLIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// an explicit path must exist; the default location is optional
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Widget.Instances < 1 {
		return fmt.Errorf("widget.instances must be at least 1, got %d", c.Widget.Instances)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	return nil
}
