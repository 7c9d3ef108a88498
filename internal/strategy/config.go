package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Exchange-wide price bounds in cents. Orders outside these are rejected
// by the venue, so hedge orders are pinned to the nearest valid tick.
const (
	MinimumBid = 1
	MaximumAsk = 2147483647
)

// Config carries every strategy constant. All values are fixed at start;
// there is no runtime reconfiguration.
type Config struct {
	LotSize        int64 `yaml:"lot_size"`
	PositionLimit  int64 `yaml:"position_limit"`
	TickSizeCents  int64 `yaml:"tick_size_cents"`
	ArbitrageTicks int64 `yaml:"arbitrage_ticks"`

	// Avellaneda-Stoikov model constants.
	Gamma          float64 `yaml:"gamma"`           // risk aversion
	Kappa          float64 `yaml:"kappa"`           // order arrival intensity
	VolatilitySeed float64 `yaml:"volatility_seed"` // sigma before the estimator warms up
	SessionSeconds int64   `yaml:"session_seconds"` // total trading session length
	MaxOrderTicks  int64   `yaml:"max_order_ticks"` // ladder depth in ticks

	// Placement policy: fractions of available capacity allocated to the
	// first unassigned ladder levels, front-loaded. The fallback schedule
	// applies when the main schedule would allocate no more than one lot.
	SplitSchedule []decimal.Decimal `yaml:"split_schedule"`
	FallbackSplit []decimal.Decimal `yaml:"fallback_split"`

	// Hedger knobs.
	HedgeRatio        decimal.Decimal `yaml:"hedge_ratio"`      // default partial ratio
	FullHedgeRatio    decimal.Decimal `yaml:"full_hedge_ratio"` // ratio near a favorable reference crossing
	HedgeStalenessSec int64           `yaml:"hedge_staleness_sec"`
	HedgeRefWindow    int             `yaml:"hedge_ref_window"`          // traded mids kept for the gmean reference
	FullHedgeTickTol  int64           `yaml:"full_hedge_tick_tolerance"` // crossing tolerance in ticks

	// Volatility estimator windows.
	VolWindow     int `yaml:"vol_window"`
	VolMinSamples int `yaml:"vol_min_samples"`
}

// DefaultConfig returns the tuning used in simulation runs.
func DefaultConfig() Config {
	return Config{
		LotSize:           20,
		PositionLimit:     100,
		TickSizeCents:     100,
		ArbitrageTicks:    3,
		Gamma:             0.2,
		Kappa:             2,
		VolatilitySeed:    0.05,
		SessionSeconds:    900,
		MaxOrderTicks:     3,
		SplitSchedule:     fractions("0.3", "0.2", "0.2"),
		FallbackSplit:     fractions("0.5"),
		HedgeRatio:        decimal.RequireFromString("0.2"),
		FullHedgeRatio:    decimal.NewFromInt(1),
		HedgeStalenessSec: 30,
		HedgeRefWindow:    60,
		FullHedgeTickTol:  1,
		VolWindow:         50,
		VolMinSamples:     10,
	}
}

func fractions(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

// Validate checks strategy configuration validity.
func (c *Config) Validate() error {
	if c.LotSize <= 0 {
		return fmt.Errorf("lot_size must be positive, got %d", c.LotSize)
	}
	if c.PositionLimit <= 0 {
		return fmt.Errorf("position_limit must be positive, got %d", c.PositionLimit)
	}
	if c.TickSizeCents <= 0 {
		return fmt.Errorf("tick_size_cents must be positive, got %d", c.TickSizeCents)
	}
	if c.ArbitrageTicks <= 0 {
		return fmt.Errorf("arbitrage_ticks must be positive, got %d", c.ArbitrageTicks)
	}
	if c.Gamma <= 0 || c.Kappa <= 0 {
		return fmt.Errorf("gamma and kappa must be positive, got %v / %v", c.Gamma, c.Kappa)
	}
	if c.SessionSeconds <= 0 {
		return fmt.Errorf("session_seconds must be positive, got %d", c.SessionSeconds)
	}
	if c.MaxOrderTicks <= 0 {
		return fmt.Errorf("max_order_ticks must be positive, got %d", c.MaxOrderTicks)
	}
	if len(c.SplitSchedule) == 0 || len(c.FallbackSplit) == 0 {
		return fmt.Errorf("split schedules must not be empty")
	}
	for _, s := range [][]decimal.Decimal{c.SplitSchedule, c.FallbackSplit} {
		for _, f := range s {
			if !f.IsPositive() || f.GreaterThan(decimal.NewFromInt(1)) {
				return fmt.Errorf("split fraction %s out of (0,1]", f)
			}
		}
	}
	if !c.HedgeRatio.IsPositive() || c.HedgeRatio.GreaterThan(c.FullHedgeRatio) {
		return fmt.Errorf("hedge_ratio %s must be in (0, full_hedge_ratio]", c.HedgeRatio)
	}
	if c.FullHedgeRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("full_hedge_ratio %s must not exceed 1", c.FullHedgeRatio)
	}
	if c.HedgeStalenessSec <= 0 {
		return fmt.Errorf("hedge_staleness_sec must be positive, got %d", c.HedgeStalenessSec)
	}
	if c.HedgeRefWindow < 2 {
		return fmt.Errorf("hedge_ref_window must be at least 2, got %d", c.HedgeRefWindow)
	}
	if c.VolWindow < 2 || c.VolMinSamples < 2 || c.VolMinSamples > c.VolWindow {
		return fmt.Errorf("volatility windows invalid: window %d, min %d", c.VolWindow, c.VolMinSamples)
	}
	return nil
}

// MinBidNearestTick is the lowest valid price rounded up to the tick,
// used for aggressive sell hedges.
func (c *Config) MinBidNearestTick() int64 {
	return (MinimumBid + c.TickSizeCents) / c.TickSizeCents * c.TickSizeCents
}

// MaxAskNearestTick is the highest valid price rounded down to the tick,
// used for aggressive buy hedges.
func (c *Config) MaxAskNearestTick() int64 {
	return MaximumAsk / c.TickSizeCents * c.TickSizeCents
}
