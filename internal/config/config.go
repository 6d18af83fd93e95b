package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	defaultPerPage        = 20
	defaultMaxAttempts    = 3
	defaultRetryDelay     = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
	defaultRateLimitPause = 5 * time.Second
	defaultUserAgent      = "eowatch/1.0"
)

var defaultIntervals = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

type Config struct {
	APIURL             string   `yaml:"api_url"`
	UserAgent          string   `yaml:"user_agent"`
	PerPage            int      `yaml:"per_page"`
	President          string   `yaml:"president,omitempty"`
	Lookback           string   `yaml:"lookback,omitempty"`
	PollIntervals      []string `yaml:"poll_intervals"`
	MaxAttempts        int      `yaml:"max_attempts"`
	RetryDelay         string   `yaml:"retry_delay"`
	RequestTimeout     string   `yaml:"request_timeout"`
	RateLimitThreshold int      `yaml:"rate_limit_threshold"`
	RateLimitPause     string   `yaml:"rate_limit_pause"`
	CacheFile          string   `yaml:"cache_file,omitempty"`
	OpenInBrowser      bool     `yaml:"open_in_browser"`
}

// Intervals returns the poll schedule. Invalid entries fall back to the
// built-in schedule as a whole.
func (c *Config) Intervals() []time.Duration {
	if len(c.PollIntervals) == 0 {
		return append([]time.Duration(nil), defaultIntervals...)
	}
	out := make([]time.Duration, 0, len(c.PollIntervals))
	for _, s := range c.PollIntervals {
		d, err := ParseDuration(s)
		if err != nil || d <= 0 {
			return append([]time.Duration(nil), defaultIntervals...)
		}
		out = append(out, d)
	}
	return out
}

func (c *Config) RetryDelayDuration() time.Duration {
	return durationOr(c.RetryDelay, defaultRetryDelay)
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	return durationOr(c.RequestTimeout, defaultRequestTimeout)
}

func (c *Config) RateLimitPauseDuration() time.Duration {
	return durationOr(c.RateLimitPause, defaultRateLimitPause)
}

// LookbackDuration returns zero when no signing-date window is configured.
func (c *Config) LookbackDuration() time.Duration {
	if c.Lookback == "" {
		return 0
	}
	d, err := ParseDuration(c.Lookback)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (c *Config) GetPerPage() int {
	if c.PerPage <= 0 {
		return defaultPerPage
	}
	return c.PerPage
}

func (c *Config) GetMaxAttempts() int {
	if c.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return c.MaxAttempts
}

// GetUserAgent prefers EOWATCH_USER_AGENT over the configured value.
func (c *Config) GetUserAgent() string {
	if ua := os.Getenv("EOWATCH_USER_AGENT"); ua != "" {
		return ua
	}
	if c.UserAgent == "" {
		return defaultUserAgent
	}
	return c.UserAgent
}

func (c *Config) CachePath() string {
	if c.CacheFile != "" {
		return c.CacheFile
	}
	return CachePath()
}

// ParseDuration accepts time.ParseDuration syntax plus a whole-day "Nd" form.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func durationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "eowatch", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "eowatch", "seen_eos.json")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is seeded with the embedded defaults. Keys absent
// from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: embedded defaults still apply.
			_ = writeDefaults(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url: scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.PerPage < 1 || cfg.PerPage > 1000 {
		return fmt.Errorf("per_page: must be between 1 and 1000, got %d", cfg.PerPage)
	}
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts: must be at least 1, got %d", cfg.MaxAttempts)
	}
	if cfg.Lookback != "" {
		if _, err := ParseDuration(cfg.Lookback); err != nil {
			return fmt.Errorf("lookback: %w", err)
		}
	}
	return ValidateIntervals(cfg.PollIntervals)
}

// ValidateIntervals checks that every entry is a positive duration and that
// the list is ordered fastest first.
func ValidateIntervals(intervals []string) error {
	if len(intervals) == 0 {
		return fmt.Errorf("poll_intervals: at least one interval is required")
	}
	var prev time.Duration
	for i, s := range intervals {
		d, err := ParseDuration(s)
		if err != nil {
			return fmt.Errorf("poll_intervals[%d]: %w", i, err)
		}
		if d <= 0 {
			return fmt.Errorf("poll_intervals[%d]: must be positive, got %s", i, s)
		}
		if d < prev {
			return fmt.Errorf("poll_intervals[%d]: %s is faster than the previous entry", i, s)
		}
		prev = d
	}
	return nil
}
