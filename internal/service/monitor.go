package service

import (
	"sync"
	"time"

	"trader_go/internal/infra"
	"trader_go/internal/strategy"
)

// Monitor keeps the latest strategy snapshot for external readers (the
// metrics endpoint, state dumps) and publishes the observability gauges.
// The dispatcher pushes snapshots; everything else only reads.
type Monitor struct {
	mu        sync.RWMutex
	last      strategy.Snapshot
	updatedAt time.Time
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Update records a new snapshot and refreshes the gauges. Called from
// the dispatch goroutine after every processed event.
func (m *Monitor) Update(s strategy.Snapshot) {
	m.mu.Lock()
	m.last = s
	m.updatedAt = time.Now()
	m.mu.Unlock()

	infra.SetPosition(s.Net)
	infra.SetHedgeVolume(s.HedgeVolume)
	infra.SetVolatility(s.Sigma)
}

// Latest returns the most recent snapshot and its arrival time.
func (m *Monitor) Latest() (strategy.Snapshot, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.updatedAt
}
