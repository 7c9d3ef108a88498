package domain

// LadderEntry is one price level the strategy intends to keep a resting
// order at. OrderID is zero until an insert has been sent for the level.
type LadderEntry struct {
	Price     int64
	OrderID   int64
	Remaining int64
}

// Assigned reports whether a live order has been sent for this level.
func (e *LadderEntry) Assigned() bool { return e.OrderID != 0 }

// Ladder is the ordered collection of price levels for one side.
// Bid ladders are kept strictly descending by price, ask ladders strictly
// ascending, and contiguous over a fixed tick range anchored at the
// model's current target price.
type Ladder struct {
	side    Side
	entries []LadderEntry
}

// NewLadder creates an empty ladder for the given side.
func NewLadder(side Side) *Ladder {
	return &Ladder{side: side}
}

// Side returns the ladder's side.
func (l *Ladder) Side() Side { return l.side }

// Len returns the number of levels currently tracked.
func (l *Ladder) Len() int { return len(l.entries) }

// Entries exposes the underlying levels, best price first.
// The slice must not be retained across mutations.
func (l *Ladder) Entries() []LadderEntry { return l.entries }

// Resting returns the total remaining volume across all levels.
func (l *Ladder) Resting() int64 {
	var total int64
	for i := range l.entries {
		total += l.entries[i].Remaining
	}
	return total
}

// closerToTouch reports whether price a is closer to the top of the book
// than price b on this side.
func (l *Ladder) closerToTouch(a, b int64) bool {
	if l.side == SideBid {
		return a > b
	}
	return a < b
}

// Reconcile aligns the ladder with a freshly computed target price.
// Levels outside [target, target-depth*tick] (mirrored for asks) are
// dropped and returned so the caller can cancel any live orders; levels
// inside the window are preserved untouched; missing prices are inserted
// unassigned at their sorted position. Reconciling twice with the same
// target is a no-op the second time.
func (l *Ladder) Reconcile(target, depthTicks, tick int64) []LadderEntry {
	far := target - depthTicks*tick
	if l.side == SideAsk {
		far = target + depthTicks*tick
	}

	var removed []LadderEntry
	kept := make([]LadderEntry, 0, len(l.entries))
	for _, e := range l.entries {
		if l.closerToTouch(e.Price, target) || l.closerToTouch(far, e.Price) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept

	step := -tick
	if l.side == SideAsk {
		step = tick
	}
	for k := int64(0); k < depthTicks; k++ {
		l.insert(target + k*step)
	}
	return removed
}

// insert adds an unassigned level at its sorted position unless the price
// is already present. Positional insertion keeps the relative order of
// existing entries undisturbed.
func (l *Ladder) insert(price int64) {
	idx := len(l.entries)
	for i := range l.entries {
		if l.entries[i].Price == price {
			return
		}
		if l.closerToTouch(price, l.entries[i].Price) {
			idx = i
			break
		}
	}
	l.entries = append(l.entries, LadderEntry{})
	copy(l.entries[idx+1:], l.entries[idx:])
	l.entries[idx] = LadderEntry{Price: price}
}

// Find returns the entry holding the given live order id, nil if absent.
func (l *Ladder) Find(orderID int64) *LadderEntry {
	for i := range l.entries {
		if l.entries[i].OrderID == orderID {
			return &l.entries[i]
		}
	}
	return nil
}

// Remove drops the entry holding the given order id.
func (l *Ladder) Remove(orderID int64) bool {
	for i := range l.entries {
		if l.entries[i].OrderID == orderID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ApplyFill decrements the remaining volume of the entry holding the
// given order id, leaving every other entry untouched.
func (l *Ladder) ApplyFill(orderID, volume int64) bool {
	e := l.Find(orderID)
	if e == nil {
		return false
	}
	e.Remaining -= volume
	if e.Remaining < 0 {
		e.Remaining = 0
	}
	return true
}

// AtOrBetter returns the live entries priced at or better than the given
// aggressive price on this side: at or below for asks, at or above for
// bids. These are the orders that would compete with an aggressive order
// crossing the book at that price.
func (l *Ladder) AtOrBetter(price int64) []LadderEntry {
	var out []LadderEntry
	for _, e := range l.entries {
		if !e.Assigned() {
			continue
		}
		if e.Price == price || l.closerToTouch(e.Price, price) {
			out = append(out, e)
		}
	}
	return out
}

// PopMostResting removes and returns the live entry with the largest
// remaining volume. Used by the position-breach correction path.
func (l *Ladder) PopMostResting() (LadderEntry, bool) {
	best := -1
	for i := range l.entries {
		if l.entries[i].Remaining == 0 {
			continue
		}
		if best == -1 || l.entries[i].Remaining > l.entries[best].Remaining {
			best = i
		}
	}
	if best == -1 {
		return LadderEntry{}, false
	}
	e := l.entries[best]
	l.entries = append(l.entries[:best], l.entries[best+1:]...)
	return e, true
}
