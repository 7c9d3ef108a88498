package domain

// BookDepth is the number of price levels carried per side of a snapshot.
const BookDepth = 5

// BookSnapshot holds the latest known best levels for one instrument.
// A price of zero at index i means no level is present at that depth.
// The snapshot is overwritten wholesale on each accepted book update,
// never partially mutated.
type BookSnapshot struct {
	AskPrices  [BookDepth]int64
	AskVolumes [BookDepth]int64
	BidPrices  [BookDepth]int64
	BidVolumes [BookDepth]int64
}

// Apply replaces the whole snapshot with the levels of a new update.
func (b *BookSnapshot) Apply(askPrices, askVolumes, bidPrices, bidVolumes [BookDepth]int64) {
	b.AskPrices = askPrices
	b.AskVolumes = askVolumes
	b.BidPrices = bidPrices
	b.BidVolumes = bidVolumes
}

// BestBid returns the top-of-book bid price, zero if the side is empty.
func (b *BookSnapshot) BestBid() int64 { return b.BidPrices[0] }

// BestAsk returns the top-of-book ask price, zero if the side is empty.
func (b *BookSnapshot) BestAsk() int64 { return b.AskPrices[0] }

// HasTop reports whether both top levels are populated.
func (b *BookSnapshot) HasTop() bool {
	return b.BidPrices[0] != 0 && b.AskPrices[0] != 0
}

// Mid returns the top-of-book mid price. Callers must check HasTop first.
func (b *BookSnapshot) Mid() float64 {
	return float64(b.BidPrices[0]+b.AskPrices[0]) / 2
}
