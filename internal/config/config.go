package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/claude/setforge/internal/match"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// MatcherConfig tunes the confidence tiers. Zero values fall back to
// the built-in defaults.
type MatcherConfig struct {
	AcceptThreshold float64 `yaml:"accept_threshold"`
	ReviewThreshold float64 `yaml:"review_threshold"`
	TopK            int     `yaml:"top_k"`
	SuggestCutoff   float64 `yaml:"suggest_cutoff"`
}

// CatalogConfig points at the canonical exercise catalog. An empty path
// selects the embedded default catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Options converts the matcher section to match.Options, filling gaps
// from the defaults.
func (m MatcherConfig) Options() match.Options {
	opts := match.DefaultOptions()
	if m.AcceptThreshold > 0 {
		opts.AcceptThreshold = m.AcceptThreshold
	}
	if m.ReviewThreshold > 0 {
		opts.ReviewThreshold = m.ReviewThreshold
	}
	if m.TopK > 0 {
		opts.TopK = m.TopK
	}
	if m.SuggestCutoff > 0 {
		opts.SuggestCutoff = m.SuggestCutoff
	}
	return opts
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix SETFORGE_ and underscore-separated paths:
//
//	SETFORGE_SERVER_HOST, SETFORGE_SERVER_PORT,
//	SETFORGE_DB_HOST, SETFORGE_DB_PORT, SETFORGE_DB_NAME,
//	SETFORGE_DB_USER, SETFORGE_DB_PASSWORD, SETFORGE_DB_SSLMODE,
//	SETFORGE_AUTH_API_KEY, SETFORGE_CATALOG_PATH,
//	SETFORGE_MATCHER_ACCEPT, SETFORGE_MATCHER_REVIEW
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SETFORGE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SETFORGE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SETFORGE_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("SETFORGE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("SETFORGE_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("SETFORGE_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("SETFORGE_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("SETFORGE_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("SETFORGE_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("SETFORGE_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("SETFORGE_MATCHER_ACCEPT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matcher.AcceptThreshold = f
		}
	}
	if v := os.Getenv("SETFORGE_MATCHER_REVIEW"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matcher.ReviewThreshold = f
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Matcher.AcceptThreshold > 1 || c.Matcher.ReviewThreshold > 1 {
		return fmt.Errorf("matcher thresholds must be in [0,1]")
	}
	if c.Matcher.AcceptThreshold > 0 && c.Matcher.ReviewThreshold > c.Matcher.AcceptThreshold {
		return fmt.Errorf("matcher.review_threshold must not exceed matcher.accept_threshold")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale.enabled")
	}
	return nil
}
