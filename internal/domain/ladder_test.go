package domain

import (
	"testing"
)

func prices(l *Ladder) []int64 {
	out := make([]int64, 0, l.Len())
	for _, e := range l.Entries() {
		out = append(out, e.Price)
	}
	return out
}

func TestLadder_ReconcileFillsFreshWindow(t *testing.T) {
	l := NewLadder(SideBid)

	removed := l.Reconcile(10000, 3, 100)
	if len(removed) != 0 {
		t.Fatalf("fresh reconcile removed %d entries, want 0", len(removed))
	}

	want := []int64{10000, 9900, 9800}
	got := prices(l)
	if len(got) != len(want) {
		t.Fatalf("ladder has %d levels, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLadder_SortInvariant(t *testing.T) {
	bid := NewLadder(SideBid)
	ask := NewLadder(SideAsk)

	// Repeated reconciles with drifting targets must keep bids strictly
	// descending and asks strictly ascending.
	targets := []int64{10000, 10200, 9900, 10100, 9800}
	for _, target := range targets {
		bid.Reconcile(target, 3, 100)
		ask.Reconcile(target+300, 3, 100)

		for i := 1; i < bid.Len(); i++ {
			if bid.Entries()[i].Price >= bid.Entries()[i-1].Price {
				t.Fatalf("bid ladder not strictly descending after target %d: %v", target, prices(bid))
			}
		}
		for i := 1; i < ask.Len(); i++ {
			if ask.Entries()[i].Price <= ask.Entries()[i-1].Price {
				t.Fatalf("ask ladder not strictly ascending after target %d: %v", target, prices(ask))
			}
		}
	}
}

func TestLadder_ReconcilePreservesInWindowOrders(t *testing.T) {
	l := NewLadder(SideBid)
	l.Reconcile(10000, 3, 100)

	// Simulate working orders on every level.
	for i := range l.Entries() {
		l.Entries()[i].OrderID = int64(i + 1)
		l.Entries()[i].Remaining = 10
	}

	// Shift target down one tick: 10000 exits the window, 9700 enters.
	removed := l.Reconcile(9900, 3, 100)
	if len(removed) != 1 || removed[0].Price != 10000 {
		t.Fatalf("removed = %v, want single entry at 10000", removed)
	}

	want := []int64{9900, 9800, 9700}
	for i, p := range want {
		if l.Entries()[i].Price != p {
			t.Fatalf("level %d = %d, want %d", i, l.Entries()[i].Price, p)
		}
	}
	// Surviving levels keep their order ids and volumes.
	if l.Entries()[0].OrderID != 2 || l.Entries()[0].Remaining != 10 {
		t.Errorf("entry at 9900 lost its working order: %+v", l.Entries()[0])
	}
	if l.Entries()[2].OrderID != 0 {
		t.Errorf("fresh entry at 9700 should be unassigned, got id %d", l.Entries()[2].OrderID)
	}
}

func TestLadder_ReconcileIdempotent(t *testing.T) {
	l := NewLadder(SideAsk)
	l.Reconcile(10100, 3, 100)
	n := l.Len()

	removed := l.Reconcile(10100, 3, 100)
	if len(removed) != 0 {
		t.Errorf("second reconcile removed %d entries, want 0", len(removed))
	}
	if l.Len() != n {
		t.Errorf("second reconcile changed ladder size %d -> %d", n, l.Len())
	}
}

func TestLadder_ApplyFill(t *testing.T) {
	l := NewLadder(SideBid)
	l.Reconcile(10000, 3, 100)
	l.Entries()[0].OrderID = 7
	l.Entries()[0].Remaining = 20
	l.Entries()[1].OrderID = 8
	l.Entries()[1].Remaining = 15

	if !l.ApplyFill(7, 5) {
		t.Fatal("ApplyFill should find order 7")
	}
	if got := l.Entries()[0].Remaining; got != 15 {
		t.Errorf("remaining = %d, want 15", got)
	}
	// Other entries untouched.
	if got := l.Entries()[1].Remaining; got != 15 {
		t.Errorf("unrelated entry remaining = %d, want 15", got)
	}
	if l.ApplyFill(99, 5) {
		t.Error("ApplyFill should report false for unknown order")
	}
}

func TestLadder_AtOrBetter(t *testing.T) {
	ask := NewLadder(SideAsk)
	ask.Reconcile(10100, 3, 100)
	for i := range ask.Entries() {
		ask.Entries()[i].OrderID = int64(10 + i)
		ask.Entries()[i].Remaining = 5
	}

	// Aggressive buy at 10200 competes with asks at 10100 and 10200.
	hits := ask.AtOrBetter(10200)
	if len(hits) != 2 {
		t.Fatalf("AtOrBetter returned %d entries, want 2", len(hits))
	}
	for _, e := range hits {
		if e.Price > 10200 {
			t.Errorf("entry at %d should not compete with buy at 10200", e.Price)
		}
	}
}

func TestLadder_PopMostResting(t *testing.T) {
	l := NewLadder(SideBid)
	l.Reconcile(10000, 3, 100)
	l.Entries()[0].OrderID = 1
	l.Entries()[0].Remaining = 5
	l.Entries()[1].OrderID = 2
	l.Entries()[1].Remaining = 30
	l.Entries()[2].OrderID = 3
	l.Entries()[2].Remaining = 10

	e, ok := l.PopMostResting()
	if !ok || e.OrderID != 2 {
		t.Fatalf("PopMostResting = %+v, want order 2", e)
	}
	if l.Len() != 2 {
		t.Errorf("ladder len = %d after pop, want 2", l.Len())
	}
}
