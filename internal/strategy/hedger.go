package strategy

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"trader_go/internal/domain"
)

// Hedger decides how much of the net position to offset in the
// correlated instrument. It keeps cumulative fire-and-forget accounting:
// hedgeVolume records every lot already instructed, whether or not the
// venue has confirmed it yet, so the same exposure is never hedged twice.
type Hedger struct {
	ratio     decimal.Decimal // default partial hedge ratio
	fullRatio decimal.Decimal
	tolCents  int64 // reference-crossing tolerance in cents
	staleness time.Duration

	refMids *domain.PriceRing // rolling traded mid prices

	hedgeVolume int64
	lastHedge   time.Time
}

// NewHedger creates a hedger. now anchors the staleness clock.
func NewHedger(cfg *Config, now time.Time) *Hedger {
	return &Hedger{
		ratio:     cfg.HedgeRatio,
		fullRatio: cfg.FullHedgeRatio,
		tolCents:  cfg.FullHedgeTickTol * cfg.TickSizeCents,
		staleness: time.Duration(cfg.HedgeStalenessSec) * time.Second,
		refMids:   domain.NewPriceRing(cfg.HedgeRefWindow),
	}
}

// ObserveMid feeds one traded mid price into the reference window.
func (h *Hedger) ObserveMid(mid int64) {
	h.refMids.Push(mid)
}

// HedgeVolume returns the cumulative instructed hedge lots.
func (h *Hedger) HedgeVolume() int64 { return h.hedgeVolume }

// reference returns the geometric mean of the rolling mid window.
func (h *Hedger) reference() (float64, bool) {
	n := h.refMids.Len()
	if n < 2 {
		return 0, false
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Log(float64(h.refMids.At(i)))
	}
	return math.Exp(sum / float64(n)), true
}

// escalate reports whether the hedge ratio should be raised to full:
// either the market has crossed the reference far enough in the
// position's favor to hedge cheaply, or no hedge has happened within the
// staleness threshold.
func (h *Hedger) escalate(position int64, now time.Time) bool {
	if !h.lastHedge.IsZero() && now.Sub(h.lastHedge) > h.staleness {
		return true
	}
	last, ok := h.refMids.Last()
	if !ok {
		return false
	}
	ref, ok := h.reference()
	if !ok {
		return false
	}
	if position > 0 && float64(last) >= ref+float64(h.tolCents) {
		return true // long, price above reference: selling the hedge is favorable
	}
	if position < 0 && float64(last) <= ref-float64(h.tolCents) {
		return true // short, price below reference: buying the hedge is favorable
	}
	return false
}

// Evaluate computes the signed hedge quantity still to instruct:
// floor(-position*ratio) - hedgeVolume. Negative means sell that many
// lots (ask-side hedge), positive means buy. The cumulative accounting is
// always advanced, regardless of whether the caller's send succeeds;
// drift corrects itself on the next cycle.
func (h *Hedger) Evaluate(position int64, now time.Time) int64 {
	if h.lastHedge.IsZero() {
		h.lastHedge = now
	}

	ratio := h.ratio
	if h.escalate(position, now) {
		ratio = h.fullRatio
	}

	target := decimal.NewFromInt(-position).Mul(ratio).Floor().IntPart()
	toHedge := target - h.hedgeVolume

	h.hedgeVolume += toHedge
	if toHedge != 0 {
		h.lastHedge = now
	}
	return toHedge
}
