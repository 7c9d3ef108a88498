package strategy

import (
	"testing"

	"trader_go/internal/domain"
)

func tickLevels(price int64) [domain.BookDepth]int64 {
	return [domain.BookDepth]int64{price}
}

func TestVolKeepsSeedBelowMinSamples(t *testing.T) {
	v := NewVolEstimator(50, 4, 0.05)

	for i := 0; i < 3; i++ {
		v.Observe(tickLevels(9990), tickLevels(10010))
	}
	if v.Sigma() != 0.05 {
		t.Errorf("expected seed sigma 0.05 before warmup, got %v", v.Sigma())
	}
}

func TestVolConstantPricesGiveZero(t *testing.T) {
	v := NewVolEstimator(50, 4, 0.05)

	for i := 0; i < 4; i++ {
		v.Observe(tickLevels(9990), tickLevels(10010))
	}
	if v.Sigma() != 0 {
		t.Errorf("expected zero sigma for constant mids, got %v", v.Sigma())
	}
}

func TestVolMovingPricesGivePositive(t *testing.T) {
	v := NewVolEstimator(50, 4, 0.05)

	prices := []int64{10000, 10100, 9900, 10200, 10000}
	for _, p := range prices {
		v.Observe(tickLevels(p-10), tickLevels(p+10))
	}
	if v.Sigma() <= 0 {
		t.Errorf("expected positive sigma for moving mids, got %v", v.Sigma())
	}
}

func TestVolSkipsAbsentLevels(t *testing.T) {
	v := NewVolEstimator(50, 4, 0.05)

	// Empty levels must not enter the windows as zero prices.
	var empty [domain.BookDepth]int64
	for i := 0; i < 10; i++ {
		v.Observe(empty, tickLevels(10010))
	}
	if v.Sigma() != 0.05 {
		t.Errorf("expected seed sigma with one-sided data, got %v", v.Sigma())
	}
}
