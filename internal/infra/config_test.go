package infra

import (
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `
app:
  name: "trader_go"
  version: "test"
feed:
  mode: "ws"
  ws_url: "ws://localhost:8765/feed"
  inbox_size: 256
strategy:
  lot_size: 20
  position_limit: 100
  tick_size_cents: 100
  arbitrage_ticks: 3
  gamma: 0.2
  kappa: 2
  volatility_seed: 0.05
  session_seconds: 900
  max_order_ticks: 3
  split_schedule: ["0.3", "0.2", "0.2"]
  fallback_split: ["0.5"]
  hedge_ratio: "0.2"
  full_hedge_ratio: "1"
  hedge_staleness_sec: 30
  hedge_ref_window: 60
  full_hedge_tick_tolerance: 1
  vol_window: 50
  vol_min_samples: 10
journal:
  enabled: false
  path: ""
metrics:
  addr: ""
logging:
  level: "info"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Feed.Mode != "ws" || cfg.Feed.InboxSize != 256 {
		t.Errorf("feed section not loaded: %+v", cfg.Feed)
	}
	if cfg.Strategy.LotSize != 20 || cfg.Strategy.PositionLimit != 100 {
		t.Errorf("strategy section not loaded: %+v", cfg.Strategy)
	}
	if cfg.Strategy.HedgeRatio.String() != "0.2" {
		t.Errorf("hedge ratio = %s, want 0.2", cfg.Strategy.HedgeRatio)
	}
	if len(cfg.Strategy.SplitSchedule) != 3 {
		t.Errorf("split schedule length = %d, want 3", len(cfg.Strategy.SplitSchedule))
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadConfigRejectsBadMode(t *testing.T) {
	bad := validConfig + "\n"
	cfg, _ := LoadConfig(writeConfig(t, bad))
	if cfg == nil {
		t.Fatal("baseline config should load")
	}

	cfg.Feed.Mode = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown feed mode")
	}
}

func TestLoadConfigRejectsBadURL(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Feed.WSURL = "http://not-a-socket"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for non-websocket URL")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TRADER_LOG_LEVEL", "debug")
	t.Setenv("TRADER_FEED_WS_URL", "wss://replaced.example/feed")

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level override not applied: %s", cfg.Logging.Level)
	}
	if cfg.Feed.WSURL != "wss://replaced.example/feed" {
		t.Errorf("ws url override not applied: %s", cfg.Feed.WSURL)
	}
}

func TestLoadConfigJournalNeedsPath(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Journal.Enabled = true
	cfg.Journal.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for journal without a path")
	}
}
