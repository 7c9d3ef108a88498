package execution

import (
	"testing"

	"trader_go/internal/domain"
	"trader_go/internal/event"
)

var _ domain.OrderSender = (*PaperVenue)(nil)
var _ domain.OrderSender = (*InstrumentedSender)(nil)

func newVenue(t *testing.T) (*PaperVenue, chan event.Event) {
	t.Helper()
	inbox := make(chan event.Event, 16)
	return NewPaperVenue(inbox), inbox
}

func drain(inbox chan event.Event) []event.Event {
	var out []event.Event
	for {
		select {
		case ev := <-inbox:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func askBook(price, volume int64) domain.BookSnapshot {
	var b domain.BookSnapshot
	b.AskPrices[0], b.AskVolumes[0] = price, volume
	b.BidPrices[0], b.BidVolumes[0] = price-100, volume
	return b
}

func TestPaperFillAndKillPartialFill(t *testing.T) {
	v, inbox := newVenue(t)
	v.UpdateBook(askBook(10100, 30))

	v.SendInsertOrder(1, domain.SideBid, 10100, 50, domain.FillAndKill)

	events := drain(inbox)
	if len(events) != 2 {
		t.Fatalf("expected fill + terminal status, got %d events", len(events))
	}
	fill, ok := events[0].(*event.OrderFilledEvent)
	if !ok || fill.Volume != 30 || fill.Price != 10100 {
		t.Errorf("fill = %+v, want 30@10100", events[0])
	}
	status, ok := events[1].(*event.OrderStatusEvent)
	if !ok || status.FillVolume != 30 || status.RemainingVolume != 0 {
		t.Errorf("status = %+v, want terminal with fill 30", events[1])
	}
	if v.OpenOrders() != 0 {
		t.Errorf("fill-and-kill order must not rest, %d open", v.OpenOrders())
	}
}

func TestPaperFillAndKillMissesPrice(t *testing.T) {
	v, inbox := newVenue(t)
	v.UpdateBook(askBook(10200, 30))

	// Limit below the best ask: nothing fills, order is killed.
	v.SendInsertOrder(1, domain.SideBid, 10100, 50, domain.FillAndKill)

	events := drain(inbox)
	if len(events) != 1 {
		t.Fatalf("expected only the terminal status, got %d events", len(events))
	}
	status, ok := events[0].(*event.OrderStatusEvent)
	if !ok || status.FillVolume != 0 {
		t.Errorf("status = %+v, want kill with zero fill", events[0])
	}
}

func TestPaperFillAndKillSweepsLevels(t *testing.T) {
	v, inbox := newVenue(t)
	var b domain.BookSnapshot
	b.AskPrices[0], b.AskVolumes[0] = 10100, 10
	b.AskPrices[1], b.AskVolumes[1] = 10200, 10
	b.BidPrices[0], b.BidVolumes[0] = 10000, 10
	v.UpdateBook(b)

	v.SendInsertOrder(1, domain.SideBid, 10200, 15, domain.FillAndKill)

	events := drain(inbox)
	fill, ok := events[0].(*event.OrderFilledEvent)
	if !ok || fill.Volume != 15 {
		t.Errorf("fill = %+v, want 15 across two levels", events[0])
	}
}

func TestPaperGoodForDayRestsUntilFilled(t *testing.T) {
	v, inbox := newVenue(t)

	v.SendInsertOrder(2, domain.SideBid, 9900, 20, domain.GoodForDay)

	events := drain(inbox)
	if len(events) != 1 {
		t.Fatalf("expected a single resting ack, got %d", len(events))
	}
	ack, ok := events[0].(*event.OrderStatusEvent)
	if !ok || ack.RemainingVolume != 20 {
		t.Errorf("ack = %+v, want remaining 20", events[0])
	}
	if v.OpenOrders() != 1 {
		t.Fatalf("expected 1 resting order, got %d", v.OpenOrders())
	}

	v.FillResting(2, 20)
	events = drain(inbox)
	if len(events) != 2 {
		t.Fatalf("expected fill + terminal status, got %d", len(events))
	}
	if v.OpenOrders() != 0 {
		t.Errorf("fully filled order must be removed, %d open", v.OpenOrders())
	}
}

func TestPaperCancelRestingOrder(t *testing.T) {
	v, inbox := newVenue(t)
	v.SendInsertOrder(3, domain.SideAsk, 10300, 20, domain.GoodForDay)
	drain(inbox)

	v.SendCancelOrder(3)

	events := drain(inbox)
	status, ok := events[0].(*event.OrderStatusEvent)
	if !ok || status.RemainingVolume != 0 {
		t.Errorf("cancel ack = %+v, want terminal status", events[0])
	}
	if v.OpenOrders() != 0 {
		t.Errorf("cancelled order must be removed, %d open", v.OpenOrders())
	}
}

func TestPaperCancelUnknownOrder(t *testing.T) {
	v, inbox := newVenue(t)

	v.SendCancelOrder(99)

	events := drain(inbox)
	if _, ok := events[0].(*event.ErrorEvent); !ok {
		t.Errorf("expected error event for unknown cancel, got %+v", events[0])
	}
}

func TestPaperHedgeFillsInFull(t *testing.T) {
	v, inbox := newVenue(t)

	v.SendHedgeOrder(4, domain.SideAsk, 100, 6)

	events := drain(inbox)
	fill, ok := events[0].(*event.HedgeFilledEvent)
	if !ok || fill.OrderID != 4 || fill.Price != 100 || fill.Volume != 6 {
		t.Errorf("hedge fill = %+v, want 6@100 for order 4", events[0])
	}
}
