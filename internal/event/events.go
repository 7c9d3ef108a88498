package event

import (
	"trader_go/internal/domain"
)

// Type identifies the kind of an inbound event.
type Type uint8

const (
	TypeBookUpdate Type = iota + 1
	TypeTradeTicks
	TypeOrderFilled
	TypeOrderStatus
	TypeHedgeFilled
	TypeError
)

// String returns the string representation of Type.
func (t Type) String() string {
	switch t {
	case TypeBookUpdate:
		return "BOOK_UPDATE"
	case TypeTradeTicks:
		return "TRADE_TICKS"
	case TypeOrderFilled:
		return "ORDER_FILLED"
	case TypeOrderStatus:
		return "ORDER_STATUS"
	case TypeHedgeFilled:
		return "HEDGE_FILLED"
	case TypeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is the interface all inbound events implement.
type Event interface {
	GetSeq() uint64
	GetType() Type
}

// BaseEvent carries the fields common to every event.
type BaseEvent struct {
	Seq uint64 // transport sequence number (book/tick streams only)
	Ts  int64  // unix microseconds
}

// GetSeq returns the event's sequence number.
func (b *BaseEvent) GetSeq() uint64 { return b.Seq }

// BookUpdateEvent reports the periodic state of one instrument's order
// book: the five best levels per side, best first, zero-padded.
type BookUpdateEvent struct {
	BaseEvent
	Instrument domain.Instrument
	AskPrices  [domain.BookDepth]int64
	AskVolumes [domain.BookDepth]int64
	BidPrices  [domain.BookDepth]int64
	BidVolumes [domain.BookDepth]int64
}

func (e *BookUpdateEvent) GetType() Type { return TypeBookUpdate }

// TradeTicksEvent reports recent trading activity: the five best price
// levels per side at which trades occurred, with aggregated volumes.
type TradeTicksEvent struct {
	BaseEvent
	Instrument domain.Instrument
	AskPrices  [domain.BookDepth]int64
	AskVolumes [domain.BookDepth]int64
	BidPrices  [domain.BookDepth]int64
	BidVolumes [domain.BookDepth]int64
}

func (e *TradeTicksEvent) GetType() Type { return TypeTradeTicks }

// OrderFilledEvent reports a partial or full fill of an own order.
// Price is the average fill price, which may improve on the limit.
type OrderFilledEvent struct {
	BaseEvent
	OrderID int64
	Price   int64
	Volume  int64
}

func (e *OrderFilledEvent) GetType() Type { return TypeOrderFilled }

// OrderStatusEvent reports a status change for an own order. A cancelled
// or fully filled order carries RemainingVolume zero.
type OrderStatusEvent struct {
	BaseEvent
	OrderID         int64
	FillVolume      int64
	RemainingVolume int64
	Fees            int64
}

func (e *OrderStatusEvent) GetType() Type { return TypeOrderStatus }

// HedgeFilledEvent reports a fill of a hedge order in the correlated
// instrument.
type HedgeFilledEvent struct {
	BaseEvent
	OrderID int64
	Price   int64
	Volume  int64
}

func (e *HedgeFilledEvent) GetType() Type { return TypeHedgeFilled }

// ErrorEvent reports a venue-side error. OrderID is zero unless the
// error pertains to a specific order.
type ErrorEvent struct {
	BaseEvent
	OrderID int64
	Message string
}

func (e *ErrorEvent) GetType() Type { return TypeError }
