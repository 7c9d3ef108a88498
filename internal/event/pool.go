package event

import (
	"sync"
)

// EventPool provides sync.Pool for high-frequency event allocation.
// Book updates and trade ticks arrive continuously for both instruments;
// pooling them keeps GC pressure out of the hotpath.
//
// Usage:
//
//	ev := AcquireBookUpdateEvent()
//	ev.Instrument = domain.InstrumentFuture
//	// ... use event ...
//	ReleaseBookUpdateEvent(ev)  // Return to pool after processing
var bookUpdatePool = sync.Pool{
	New: func() interface{} {
		return &BookUpdateEvent{}
	},
}

// AcquireBookUpdateEvent gets a BookUpdateEvent from the pool.
// The returned event has zero values and must be initialized.
func AcquireBookUpdateEvent() *BookUpdateEvent {
	return bookUpdatePool.Get().(*BookUpdateEvent)
}

// ReleaseBookUpdateEvent returns a BookUpdateEvent to the pool.
// The event is reset to zero values before being pooled.
func ReleaseBookUpdateEvent(ev *BookUpdateEvent) {
	if ev == nil {
		return
	}
	*ev = BookUpdateEvent{}
	bookUpdatePool.Put(ev)
}

// TradeTicksEvent pool
var tradeTicksPool = sync.Pool{
	New: func() interface{} {
		return &TradeTicksEvent{}
	},
}

// AcquireTradeTicksEvent gets a TradeTicksEvent from the pool.
func AcquireTradeTicksEvent() *TradeTicksEvent {
	return tradeTicksPool.Get().(*TradeTicksEvent)
}

// ReleaseTradeTicksEvent returns a TradeTicksEvent to the pool.
func ReleaseTradeTicksEvent(ev *TradeTicksEvent) {
	if ev == nil {
		return
	}
	*ev = TradeTicksEvent{}
	tradeTicksPool.Put(ev)
}

// Warmup pre-allocates event objects to reduce GC pressure at startup.
// It acquires and releases a batch of events.
func Warmup() {
	const batchSize = 1000

	bookEvs := make([]*BookUpdateEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		bookEvs = append(bookEvs, AcquireBookUpdateEvent())
	}
	for _, ev := range bookEvs {
		ReleaseBookUpdateEvent(ev)
	}

	tickEvs := make([]*TradeTicksEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		tickEvs = append(tickEvs, AcquireTradeTicksEvent())
	}
	for _, ev := range tickEvs {
		ReleaseTradeTicksEvent(ev)
	}
}
