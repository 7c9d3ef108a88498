package domain

import (
	"time"
)

// SessionRecord identifies one strategy run in the trade journal.
type SessionRecord struct {
	RunID     string    `gorm:"primaryKey" json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	EndNet    int64     `json:"end_net"` // net position at shutdown
}

// FillRecord journals one own-order fill for post-session analysis.
type FillRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RunID      string    `gorm:"index" json:"run_id"`
	OrderID    int64     `gorm:"index" json:"order_id"`
	Side       string    `json:"side"`
	PriceCents int64     `json:"price_cents"`
	Volume     int64     `json:"volume"`
	NetAfter   int64     `json:"net_after"`
	CreatedAt  time.Time `json:"created_at"`
}

// HedgeRecord journals one hedge fill in the correlated instrument.
type HedgeRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RunID      string    `gorm:"index" json:"run_id"`
	OrderID    int64     `gorm:"index" json:"order_id"`
	Side       string    `json:"side"`
	PriceCents int64     `json:"price_cents"`
	Volume     int64     `json:"volume"`
	CreatedAt  time.Time `json:"created_at"`
}
