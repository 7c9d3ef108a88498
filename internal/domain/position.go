package domain

// Position tracks the running net inventory in signed lots. It is mutated
// only on own-order fills: bid fills increase it, ask fills decrease it.
type Position struct {
	Net   int64
	Limit int64
}

// ApplyFill adjusts the net position for a fill of the given volume.
func (p *Position) ApplyFill(side Side, volume int64) {
	p.Net += side.Sign() * volume
}

// Real returns the side's real position: net plus lots still resting in
// not-yet-filled own orders on that side. This is the quantity actually
// bounded by the position limit.
func (p *Position) Real(side Side, resting int64) int64 {
	if side == SideBid {
		return p.Net + resting
	}
	return p.Net - resting
}

// Capacity returns how many more lots may be committed on the side before
// the real position would breach the limit. Never negative.
func (p *Position) Capacity(side Side, resting int64) int64 {
	var c int64
	if side == SideBid {
		c = p.Limit - p.Real(SideBid, resting)
	} else {
		c = p.Limit + p.Real(SideAsk, resting)
	}
	if c < 0 {
		return 0
	}
	return c
}

// Breach returns how far the side's real position projects beyond the
// limit, zero if within bounds.
func (p *Position) Breach(side Side, resting int64) int64 {
	real := p.Real(side, resting)
	if side == SideBid && real > p.Limit {
		return real - p.Limit
	}
	if side == SideAsk && real < -p.Limit {
		return -p.Limit - real
	}
	return 0
}
