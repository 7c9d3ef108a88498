package app

import (
	"log/slog"

	"trader_go/internal/infra"
	"trader_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Journal *storage.Journal // nil when journaling is disabled
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, journal)
func (b *Bootstrap) Initialize() error {
	slog.Info("Bootstrapping trader...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Journal (DB)
	if cfg.Journal.Enabled {
		journal, err := storage.NewJournal(cfg.Journal.Path)
		if err != nil {
			return err
		}
		b.Journal = journal
		slog.Info("Journal initialized", slog.String("run_id", journal.RunID()))
	}

	return nil
}

// Shutdown closes the session row with the final net position.
func (b *Bootstrap) Shutdown(endNet int64) {
	if b.Journal == nil {
		return
	}
	if err := b.Journal.CloseSession(endNet); err != nil {
		slog.Error("Failed to close session", slog.Any("error", err))
	}
}
