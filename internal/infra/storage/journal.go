package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trader_go/internal/domain"
)

// Journal persists fills, hedge fills and session bookkeeping to SQLite
// for post-session analysis. All writes happen on the dispatch goroutine;
// the journal itself holds no locks.
type Journal struct {
	db    *gorm.DB
	runID string
}

// NewJournal opens (or creates) the journal database at path and starts
// a new session row tagged with a fresh run id.
func NewJournal(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.SessionRecord{}, &domain.FillRecord{}, &domain.HedgeRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	j := &Journal{db: db, runID: uuid.NewString()}
	session := domain.SessionRecord{RunID: j.runID, StartedAt: time.Now()}
	if err := j.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session row: %w", err)
	}
	return j, nil
}

// RunID returns the session's run identifier.
func (j *Journal) RunID() string { return j.runID }

// SaveFill journals one own-order fill.
func (j *Journal) SaveFill(fill *domain.FillRecord) error {
	fill.RunID = j.runID
	return j.db.Create(fill).Error
}

// SaveHedge journals one hedge fill.
func (j *Journal) SaveHedge(hedge *domain.HedgeRecord) error {
	hedge.RunID = j.runID
	return j.db.Create(hedge).Error
}

// CloseSession stamps the session row with the shutdown time and the
// final net position.
func (j *Journal) CloseSession(endNet int64) error {
	return j.db.Model(&domain.SessionRecord{}).
		Where("run_id = ?", j.runID).
		Updates(map[string]interface{}{"ended_at": time.Now(), "end_net": endNet}).Error
}

// FillsForRun returns the fills journaled in this session, oldest first.
func (j *Journal) FillsForRun() ([]domain.FillRecord, error) {
	var fills []domain.FillRecord
	err := j.db.Where("run_id = ?", j.runID).Order("id").Find(&fills).Error
	return fills, err
}

// HedgesForRun returns the hedge fills journaled in this session.
func (j *Journal) HedgesForRun() ([]domain.HedgeRecord, error) {
	var hedges []domain.HedgeRecord
	err := j.db.Where("run_id = ?", j.runID).Order("id").Find(&hedges).Error
	return hedges, err
}
