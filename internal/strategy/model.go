package strategy

import (
	"math"
)

// QuoteModel computes the inventory-skewed indifference price and spread
// of an Avellaneda-Stoikov style market-making model.
//
// indifference = mid - position * gamma * sigma^2 * timeFrac
// spread       = (gamma * sigma^2 * timeFrac + ln(1 + gamma/kappa)) * tick
//
// A long position pushes both quotes down to encourage selling; a short
// position pushes them up.
type QuoteModel struct {
	gamma float64
	kappa float64
	tick  float64
}

// NewQuoteModel creates a model with fixed risk aversion and intensity.
func NewQuoteModel(gamma, kappa float64, tickSizeCents int64) *QuoteModel {
	return &QuoteModel{gamma: gamma, kappa: kappa, tick: float64(tickSizeCents)}
}

// Quote returns tick-aligned target bid and ask prices. ok is false when
// the computed quote would be crossed or degenerate, in which case the
// caller must abort the reprice cycle and leave the ladder standing.
func (m *QuoteModel) Quote(bestBid, bestAsk, position int64, sigma, timeFrac float64) (bid, ask int64, ok bool) {
	if bestBid == 0 || bestAsk == 0 {
		return 0, 0, false
	}

	mid := float64(bestBid+bestAsk) / 2
	risk := m.gamma * sigma * sigma * timeFrac
	indiff := mid - float64(position)*risk
	spread := (risk + math.Log(1+m.gamma/m.kappa)) * m.tick

	bid = int64(math.Floor((indiff-spread/2)/m.tick)) * int64(m.tick)
	ask = int64(math.Ceil((indiff+spread/2)/m.tick)) * int64(m.tick)

	if bid >= ask {
		return 0, 0, false
	}
	return bid, ask, true
}
