package strategy

import (
	"trader_go/internal/event"
)

// Strategy is the interface the dispatcher drives. Handlers are called
// synchronously on the single dispatch goroutine and must run to
// completion without blocking.
type Strategy interface {
	OnBookUpdate(e *event.BookUpdateEvent)
	OnTradeTicks(e *event.TradeTicksEvent)
	OnOrderFilled(e *event.OrderFilledEvent)
	OnOrderStatus(e *event.OrderStatusEvent)
	OnHedgeFilled(e *event.HedgeFilledEvent)
	OnError(e *event.ErrorEvent)

	// Snapshot returns a copy of the externally observable state.
	Snapshot() Snapshot
}

// Snapshot is a point-in-time view of strategy state for monitoring and
// post-mortem dumps. All fields are copies; it is safe to retain.
type Snapshot struct {
	Net         int64   `json:"net"`
	RealBid     int64   `json:"real_bid"`
	RealAsk     int64   `json:"real_ask"`
	HedgeVolume int64   `json:"hedge_volume"`
	Sigma       float64 `json:"sigma"`
	TargetBid   int64   `json:"target_bid"`
	TargetAsk   int64   `json:"target_ask"`
	BidLevels   int     `json:"bid_levels"`
	AskLevels   int     `json:"ask_levels"`
	OpenBids    int     `json:"open_bids"`
	OpenAsks    int     `json:"open_asks"`
}
