package execution

import (
	"log/slog"
	"sync"
	"time"

	"trader_go/internal/domain"
	"trader_go/internal/event"
)

type paperOrder struct {
	side      domain.Side
	price     int64
	remaining int64
	filled    int64
}

// PaperVenue is a minimal simulated execution venue implementing the
// fire-and-forget command surface. Every command returns immediately;
// the resulting fills and statuses are delivered as events on the
// dispatcher inbox, preserving the asynchronous contract of the real
// order-routing transport.
//
// GOOD_FOR_DAY orders rest until cancelled or force-filled by a test
// driver. FILL_AND_KILL orders execute immediately against the venue's
// current book and the unfilled remainder is cancelled. Hedge orders are
// assumed filled in full at the requested aggressive price.
type PaperVenue struct {
	inbox chan<- event.Event

	mu     sync.Mutex
	book   domain.BookSnapshot // tradable-instrument liquidity
	orders map[int64]*paperOrder
}

// NewPaperVenue creates a venue delivering results to the given inbox.
func NewPaperVenue(inbox chan<- event.Event) *PaperVenue {
	return &PaperVenue{
		inbox:  inbox,
		orders: make(map[int64]*paperOrder),
	}
}

// UpdateBook replaces the liquidity snapshot aggressive orders fill
// against.
func (v *PaperVenue) UpdateBook(book domain.BookSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.book = book
}

// SendInsertOrder accepts a limit order. Fill-and-kill orders execute
// against the book immediately; good-for-day orders rest.
func (v *PaperVenue) SendInsertOrder(orderID int64, side domain.Side, price, volume int64, lifespan domain.Lifespan) {
	v.mu.Lock()
	defer v.mu.Unlock()

	o := &paperOrder{side: side, price: price, remaining: volume}
	v.orders[orderID] = o

	if lifespan == domain.FillAndKill {
		filled := v.matchLocked(side, price, volume)
		o.filled = filled
		o.remaining = 0
		if filled > 0 {
			v.emit(&event.OrderFilledEvent{BaseEvent: v.base(), OrderID: orderID, Price: price, Volume: filled})
		}
		v.emit(&event.OrderStatusEvent{BaseEvent: v.base(), OrderID: orderID, FillVolume: filled})
		delete(v.orders, orderID)
		return
	}

	// Resting ack.
	v.emit(&event.OrderStatusEvent{BaseEvent: v.base(), OrderID: orderID, RemainingVolume: volume})
}

// matchLocked consumes liquidity at or better than the limit price and
// returns the filled volume.
func (v *PaperVenue) matchLocked(side domain.Side, price, volume int64) int64 {
	var filled int64
	for i := 0; i < domain.BookDepth && filled < volume; i++ {
		var levelPrice, levelVolume int64
		if side == domain.SideBid {
			levelPrice, levelVolume = v.book.AskPrices[i], v.book.AskVolumes[i]
			if levelPrice == 0 || levelPrice > price {
				break
			}
		} else {
			levelPrice, levelVolume = v.book.BidPrices[i], v.book.BidVolumes[i]
			if levelPrice == 0 || levelPrice < price {
				break
			}
		}
		take := volume - filled
		if take > levelVolume {
			take = levelVolume
		}
		filled += take
	}
	return filled
}

// SendCancelOrder cancels a resting order, confirming with a terminal
// status. Unknown ids produce an error event, mirroring a real venue.
func (v *PaperVenue) SendCancelOrder(orderID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	o, ok := v.orders[orderID]
	if !ok {
		v.emit(&event.ErrorEvent{BaseEvent: v.base(), OrderID: orderID, Message: "cancel of unknown order"})
		return
	}
	delete(v.orders, orderID)
	v.emit(&event.OrderStatusEvent{BaseEvent: v.base(), OrderID: orderID, FillVolume: o.filled})
}

// SendHedgeOrder fills the hedge in full at the requested price.
func (v *PaperVenue) SendHedgeOrder(orderID int64, side domain.Side, price, volume int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.emit(&event.HedgeFilledEvent{BaseEvent: v.base(), OrderID: orderID, Price: price, Volume: volume})
}

// FillResting force-fills part of a resting order, emitting the fill and,
// when exhausted, the terminal status. Used by simulation drivers.
func (v *PaperVenue) FillResting(orderID, volume int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	o, ok := v.orders[orderID]
	if !ok || o.remaining <= 0 {
		return
	}
	if volume > o.remaining {
		volume = o.remaining
	}
	o.remaining -= volume
	o.filled += volume
	v.emit(&event.OrderFilledEvent{BaseEvent: v.base(), OrderID: orderID, Price: o.price, Volume: volume})
	if o.remaining == 0 {
		v.emit(&event.OrderStatusEvent{BaseEvent: v.base(), OrderID: orderID, FillVolume: o.filled})
		delete(v.orders, orderID)
	}
}

// OpenOrders returns the number of resting orders.
func (v *PaperVenue) OpenOrders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.orders)
}

func (v *PaperVenue) base() event.BaseEvent {
	return event.BaseEvent{Ts: time.Now().UnixMicro()}
}

// emit delivers an event without blocking the caller. The venue is
// invoked from the dispatch goroutine itself, so a blocking send into a
// full inbox would deadlock; overflow is logged and dropped instead.
func (v *PaperVenue) emit(ev event.Event) {
	select {
	case v.inbox <- ev:
	default:
		slog.Warn("paper venue inbox full, dropping event", slog.Any("type", ev.GetType()))
	}
}
