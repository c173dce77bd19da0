package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const envPrefix = "HNEFATAFL"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Locale      string        `mapstructure:"locale"`
	SearchDepth int           `mapstructure:"search_depth"`
	ServerAddr  string        `mapstructure:"server_addr"`
	WebDir      string        `mapstructure:"web_dir"`
	RedisURL    string        `mapstructure:"redis_url"`
	RedisTTL    time.Duration `mapstructure:"redis_ttl"`
	LogLevel    string        `mapstructure:"log_level"`
}

func Default() Config {
	return Config{
		Locale:      "en-GB",
		SearchDepth: 3,
		ServerAddr:  ":2888",
		WebDir:      "./web",
		RedisTTL:    24 * time.Hour,
		LogLevel:    "info",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("locale", d.Locale)
	v.SetDefault("search_depth", d.SearchDepth)
	v.SetDefault("server_addr", d.ServerAddr)
	v.SetDefault("web_dir", d.WebDir)
	v.SetDefault("redis_url", d.RedisURL)
	v.SetDefault("redis_ttl", d.RedisTTL)
	v.SetDefault("log_level", d.LogLevel)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads TOML text. Keys missing from text keep their defaults and
// HNEFATAFL_* environment variables take precedence over both.
func Parse(text string) (Config, error) {
	v := newViper()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(text)); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return decode(v)
}

// Load reads a config file; the format follows the extension. An empty path
// yields the defaults plus environment overrides.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return decode(v)
}

func (c Config) Validate() error {
	if c.SearchDepth < 1 {
		return fmt.Errorf("%w: search_depth must be at least 1, got %d", ErrInvalidConfig, c.SearchDepth)
	}
	if c.RedisTTL < 0 {
		return fmt.Errorf("%w: negative redis_ttl %v", ErrInvalidConfig, c.RedisTTL)
	}
	if c.Locale == "" {
		return fmt.Errorf("%w: empty locale", ErrInvalidConfig)
	}
	return nil
}

type tomlConfig struct {
	Locale      string `toml:"locale"`
	SearchDepth int    `toml:"search_depth"`
	ServerAddr  string `toml:"server_addr"`
	WebDir      string `toml:"web_dir"`
	RedisURL    string `toml:"redis_url"`
	RedisTTL    string `toml:"redis_ttl"`
	LogLevel    string `toml:"log_level"`
}

// TOML renders the config in the format Parse accepts.
func (c Config) TOML() (string, error) {
	b, err := toml.Marshal(tomlConfig{
		Locale:      c.Locale,
		SearchDepth: c.SearchDepth,
		ServerAddr:  c.ServerAddr,
		WebDir:      c.WebDir,
		RedisURL:    c.RedisURL,
		RedisTTL:    c.RedisTTL.String(),
		LogLevel:    c.LogLevel,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
