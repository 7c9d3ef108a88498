package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"trader_go/internal/event"
	"trader_go/internal/infra"
	"trader_go/internal/strategy"
)

// Dispatcher is the core single-threaded event processor. It owns the
// strategy state exclusively: events are delivered strictly one at a
// time and handlers run to completion, so no locking exists anywhere in
// the decision path.
type Dispatcher struct {
	inbox chan event.Event
	strat strategy.Strategy

	// Watermarks per sequence-numbered stream. Stale or duplicate events
	// (sequence strictly below the watermark) are dropped wholesale;
	// equal or greater sequence numbers advance it. Gaps are tolerated.
	bookSeq uint64
	tickSeq uint64

	// Boundary: notifies monitoring of state changes
	onSnapshot func(strategy.Snapshot)
}

// NewDispatcher creates a new dispatcher instance.
func NewDispatcher(inboxSize int, strat strategy.Strategy, onSnapshot func(strategy.Snapshot)) *Dispatcher {
	return &Dispatcher{
		inbox:      make(chan event.Event, inboxSize),
		strat:      strat,
		onSnapshot: onSnapshot,
	}
}

// Inbox returns the event channel. Gateways and venues send events here.
func (d *Dispatcher) Inbox() chan<- event.Event {
	return d.inbox
}

// Run starts the main event loop. This MUST be run in a single goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("Dispatcher started (single-thread hotpath)")

	defer func() {
		if r := recover(); r != nil {
			slog.Error("CRITICAL_PANIC_DETECTED", slog.Any("panic", r))
			d.DumpState("panic_dump.json")
			panic(fmt.Sprintf("HALTED: %v", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Dispatcher stopping...")
			return
		case ev := <-d.inbox:
			d.processEvent(ev)
		}
	}
}

func (d *Dispatcher) processEvent(ev event.Event) {
	switch e := ev.(type) {
	case *event.BookUpdateEvent:
		if e.Seq < d.bookSeq {
			infra.RecordDroppedEvent("book_update")
			event.ReleaseBookUpdateEvent(e)
			return
		}
		d.bookSeq = e.Seq
		d.strat.OnBookUpdate(e)
		event.ReleaseBookUpdateEvent(e)
	case *event.TradeTicksEvent:
		if e.Seq < d.tickSeq {
			infra.RecordDroppedEvent("trade_ticks")
			event.ReleaseTradeTicksEvent(e)
			return
		}
		d.tickSeq = e.Seq
		d.strat.OnTradeTicks(e)
		event.ReleaseTradeTicksEvent(e)
	case *event.OrderFilledEvent:
		infra.RecordFill()
		d.strat.OnOrderFilled(e)
	case *event.OrderStatusEvent:
		d.strat.OnOrderStatus(e)
	case *event.HedgeFilledEvent:
		d.strat.OnHedgeFilled(e)
	case *event.ErrorEvent:
		d.strat.OnError(e)
	default:
		slog.Warn("Unknown event type", slog.Any("type", ev.GetType()))
		return
	}

	infra.RecordEvent()
	if d.onSnapshot != nil {
		d.onSnapshot(d.strat.Snapshot())
	}
}

// DumpState writes the strategy snapshot to a file (for post-mortem).
func (d *Dispatcher) DumpState(filename string) {
	slog.Info("Dumping internal state...", slog.String("file", filename))

	data := struct {
		BookSeq  uint64            `json:"book_seq"`
		TickSeq  uint64            `json:"tick_seq"`
		Snapshot strategy.Snapshot `json:"snapshot"`
	}{
		BookSeq:  d.bookSeq,
		TickSeq:  d.tickSeq,
		Snapshot: d.strat.Snapshot(),
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal state", slog.Any("error", err))
		return
	}

	if err := os.WriteFile(filename, b, 0644); err != nil {
		slog.Error("Failed to write state dump", slog.Any("error", err))
	}
}
