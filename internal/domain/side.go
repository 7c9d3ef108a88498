package domain

// Side identifies one half of the market. It is used uniformly for ladder
// indexing, order direction and position delta sign.
type Side int8

const (
	SideBid Side = iota
	SideAsk
)

// String returns the string representation of Side.
func (s Side) String() string {
	switch s {
	case SideBid:
		return "BID"
	case SideAsk:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

// Sign returns the position delta sign of a fill on this side:
// +1 for bid fills, -1 for ask fills.
func (s Side) Sign() int64 {
	if s == SideBid {
		return 1
	}
	return -1
}

// Lifespan controls how long an inserted order may rest.
type Lifespan int8

const (
	GoodForDay Lifespan = iota
	FillAndKill
)

// String returns the string representation of Lifespan.
func (l Lifespan) String() string {
	switch l {
	case GoodForDay:
		return "GOOD_FOR_DAY"
	case FillAndKill:
		return "FILL_AND_KILL"
	default:
		return "UNKNOWN"
	}
}

// Instrument identifies one of the two correlated products.
type Instrument int8

const (
	InstrumentETF Instrument = iota
	InstrumentFuture
)

// String returns the string representation of Instrument.
func (i Instrument) String() string {
	switch i {
	case InstrumentETF:
		return "ETF"
	case InstrumentFuture:
		return "FUTURE"
	default:
		return "UNKNOWN"
	}
}
