package domain

import "testing"

func TestPosition_RealAndCapacity(t *testing.T) {
	p := Position{Net: 0, Limit: 100}

	p.ApplyFill(SideBid, 30) // bought 30
	if p.Net != 30 {
		t.Fatalf("net = %d, want 30", p.Net)
	}
	p.ApplyFill(SideAsk, 10) // sold 10
	if p.Net != 20 {
		t.Fatalf("net = %d, want 20", p.Net)
	}

	// 25 lots resting on the bid ladder.
	if got := p.Real(SideBid, 25); got != 45 {
		t.Errorf("real bid = %d, want 45", got)
	}
	if got := p.Capacity(SideBid, 25); got != 55 {
		t.Errorf("bid capacity = %d, want 55", got)
	}

	// 50 lots resting on the ask ladder.
	if got := p.Real(SideAsk, 50); got != -30 {
		t.Errorf("real ask = %d, want -30", got)
	}
	if got := p.Capacity(SideAsk, 50); got != 70 {
		t.Errorf("ask capacity = %d, want 70", got)
	}
}

func TestPosition_CapacityNeverNegative(t *testing.T) {
	p := Position{Net: 90, Limit: 100}
	if got := p.Capacity(SideBid, 40); got != 0 {
		t.Errorf("capacity = %d, want 0 when over limit", got)
	}
}

func TestPosition_Breach(t *testing.T) {
	p := Position{Net: 90, Limit: 100}

	if got := p.Breach(SideBid, 30); got != 20 {
		t.Errorf("bid breach = %d, want 20", got)
	}
	if got := p.Breach(SideBid, 5); got != 0 {
		t.Errorf("bid breach = %d, want 0", got)
	}

	p = Position{Net: -80, Limit: 100}
	if got := p.Breach(SideAsk, 45); got != 25 {
		t.Errorf("ask breach = %d, want 25", got)
	}
}

func TestPriceRing_Eviction(t *testing.T) {
	r := NewPriceRing(3)
	for _, v := range []int64{1, 2, 3, 4, 5} {
		r.Push(v)
	}
	if r.Len() != 3 {
		t.Fatalf("len = %d, want 3", r.Len())
	}
	want := []int64{3, 4, 5}
	for i, w := range want {
		if got := r.At(i); got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}
	last, ok := r.Last()
	if !ok || last != 5 {
		t.Errorf("Last() = %d,%v want 5,true", last, ok)
	}
}
