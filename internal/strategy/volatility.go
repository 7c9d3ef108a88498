package strategy

import (
	"math"

	"trader_go/internal/domain"
)

// VolEstimator maintains rolling windows of traded bid and ask prices for
// the quoted instrument and recomputes the sample standard deviation of
// log mid-price returns. Below the minimum sample count the previous
// estimate (initially the configured seed) is kept unchanged.
type VolEstimator struct {
	bids       *domain.PriceRing
	asks       *domain.PriceRing
	minSamples int
	sigma      float64
}

// NewVolEstimator creates an estimator seeded with an a-priori sigma.
func NewVolEstimator(window, minSamples int, seed float64) *VolEstimator {
	return &VolEstimator{
		bids:       domain.NewPriceRing(window),
		asks:       domain.NewPriceRing(window),
		minSamples: minSamples,
		sigma:      seed,
	}
}

// Sigma returns the current volatility estimate.
func (v *VolEstimator) Sigma() float64 { return v.sigma }

// Observe ingests one trade-tick event's price levels. Zero prices mark
// absent levels and are skipped.
func (v *VolEstimator) Observe(bidPrices, askPrices [domain.BookDepth]int64) {
	for i := 0; i < domain.BookDepth; i++ {
		if bidPrices[i] != 0 {
			v.bids.Push(bidPrices[i])
		}
		if askPrices[i] != 0 {
			v.asks.Push(askPrices[i])
		}
	}
	v.recompute()
}

func (v *VolEstimator) recompute() {
	if v.bids.Len() < v.minSamples || v.asks.Len() < v.minSamples {
		return
	}

	n := v.bids.Len()
	if v.asks.Len() < n {
		n = v.asks.Len()
	}

	// Log mid prices over the latest n samples of each window, aligned
	// from the most recent backwards.
	logs := make([]float64, n)
	bidOff := v.bids.Len() - n
	askOff := v.asks.Len() - n
	for i := 0; i < n; i++ {
		mid := float64(v.bids.At(bidOff+i)+v.asks.At(askOff+i)) / 2
		logs[i] = math.Log(mid)
	}

	// First differences and their sample standard deviation.
	diffs := make([]float64, n-1)
	var sum float64
	for i := 1; i < n; i++ {
		diffs[i-1] = logs[i] - logs[i-1]
		sum += diffs[i-1]
	}
	if len(diffs) < 2 {
		return
	}
	mean := sum / float64(len(diffs))
	var ss float64
	for _, d := range diffs {
		ss += (d - mean) * (d - mean)
	}
	v.sigma = math.Sqrt(ss / float64(len(diffs)-1))
}
