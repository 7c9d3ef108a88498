package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trader_go/internal/domain"
	"trader_go/internal/strategy"
)

// Config holds every application setting. Values are loaded once at
// start; sensitive or environment-specific entries may be overridden
// through environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Feed struct {
		// Mode selects the execution wiring: "ws" routes market data in
		// from the exchange gateway, "replay" expects events pushed by an
		// external driver. Orders always go to the paper venue.
		Mode      string `yaml:"mode"`
		WSURL     string `yaml:"ws_url"`
		InboxSize int    `yaml:"inbox_size"`
	} `yaml:"feed"`

	Strategy strategy.Config `yaml:"strategy"`

	Journal struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"journal"`

	Metrics struct {
		Addr string `yaml:"addr"` // prometheus /metrics listen address
	} `yaml:"metrics"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies
// environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	switch c.Feed.Mode {
	case "ws":
		if !hasPrefix(c.Feed.WSURL, "ws://") && !hasPrefix(c.Feed.WSURL, "wss://") {
			return &domain.ConfigError{Field: "feed.ws_url", Err: fmt.Errorf("invalid URL %q", c.Feed.WSURL)}
		}
	case "replay":
	default:
		return &domain.ConfigError{Field: "feed.mode", Err: fmt.Errorf("must be \"ws\" or \"replay\", got %q", c.Feed.Mode)}
	}
	if c.Feed.InboxSize <= 0 {
		return &domain.ConfigError{Field: "feed.inbox_size", Err: fmt.Errorf("must be positive, got %d", c.Feed.InboxSize)}
	}

	if err := c.Strategy.Validate(); err != nil {
		return &domain.ConfigError{Field: "strategy", Err: err}
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return &domain.ConfigError{Field: "journal.path", Err: fmt.Errorf("required when journal is enabled")}
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv applies environment variables over file values.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("TRADER_FEED_WS_URL"); url != "" {
		cfg.Feed.WSURL = url
	}
	if mode := os.Getenv("TRADER_FEED_MODE"); mode != "" {
		cfg.Feed.Mode = mode
	}
	if path := os.Getenv("TRADER_JOURNAL_PATH"); path != "" {
		cfg.Journal.Path = path
	}
	if level := os.Getenv("TRADER_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
