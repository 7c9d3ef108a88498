package strategy

import (
	"log/slog"

	"trader_go/internal/domain"
)

// tryArbitrage checks the cross-instrument spread and, when it exceeds
// the threshold (strict inequality), fires an aggressive fill-and-kill
// order in the ETF after cancelling own resting orders that would compete
// with it. Returns true when an arbitrage order was actually sent, in
// which case the caller skips repricing for this event.
func (m *MarketMaker) tryArbitrage() bool {
	etf := &m.books[domain.InstrumentETF]
	fut := &m.books[domain.InstrumentFuture]
	if !etf.HasTop() || !fut.HasTop() {
		return false
	}

	threshold := m.cfg.ArbitrageTicks * m.cfg.TickSizeCents

	if fut.BestAsk()-etf.BestBid() > threshold {
		// Future rich: buy the ETF aggressively at its best ask.
		return m.fireArbitrage(domain.SideBid, etf.BestAsk(), etf.AskVolumes[0])
	}
	if etf.BestAsk()-fut.BestBid() > threshold {
		// ETF rich: sell it aggressively into its best bid.
		return m.fireArbitrage(domain.SideAsk, etf.BestBid(), etf.BidVolumes[0])
	}
	return false
}

// fireArbitrage cancels competing resting orders on the opposing side
// (those priced at or better than the aggressive price) and sends a
// fill-and-kill order sized to the lot, the remaining position capacity
// and the liquidity at that price.
func (m *MarketMaker) fireArbitrage(side domain.Side, price, available int64) bool {
	opposing := m.ladder(side.Opposite())
	for _, e := range opposing.AtOrBetter(price) {
		m.sender.SendCancelOrder(e.OrderID)
	}

	size := m.cfg.LotSize
	if capacity := m.pos.Capacity(side, m.ladder(side).Resting()); capacity < size {
		size = capacity
	}
	if available < size {
		size = available
	}
	if size <= 0 {
		return false
	}

	id := m.nextOrderID()
	m.outstanding(side)[id] = struct{}{}
	m.sender.SendInsertOrder(id, side, price, size, domain.FillAndKill)

	slog.Info("arbitrage order",
		slog.Int64("order_id", id),
		slog.String("side", side.String()),
		slog.Int64("price", price),
		slog.Int64("size", size))
	return true
}
