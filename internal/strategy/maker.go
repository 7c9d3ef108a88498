package strategy

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"trader_go/internal/domain"
	"trader_go/internal/event"
)

// MarketMaker is the quoting/inventory/hedging decision engine. It quotes
// two-sided ladders around a model-derived fair price of the future,
// exploits cross-instrument arbitrage, and hedges accumulated inventory.
//
// All state is owned exclusively by the dispatch goroutine; handlers are
// invoked strictly one at a time and never block. Outbound commands are
// fire-and-forget: results arrive later as events.
type MarketMaker struct {
	cfg     Config
	sender  domain.OrderSender
	journal domain.Journal // optional, nil disables journaling
	now     func() time.Time
	start   time.Time

	books     [2]domain.BookSnapshot // indexed by domain.Instrument
	bidLadder *domain.Ladder
	askLadder *domain.Ladder
	pos       domain.Position

	// Outstanding own-order identifiers per side. An id is added when an
	// insert is sent and discarded on terminal status. Hedge ids are
	// tracked separately so hedge fills can be attributed a side.
	bids       map[int64]struct{}
	asks       map[int64]struct{}
	hedgeSides map[int64]domain.Side

	model  *QuoteModel
	vol    *VolEstimator
	hedger *Hedger

	nextID    int64
	targetBid int64
	targetAsk int64
}

// NewMarketMaker wires the decision engine. journal may be nil. now may
// be nil, defaulting to time.Now; tests inject a fake clock.
func NewMarketMaker(cfg Config, sender domain.OrderSender, journal domain.Journal, now func() time.Time) *MarketMaker {
	if now == nil {
		now = time.Now
	}
	return &MarketMaker{
		cfg:        cfg,
		sender:     sender,
		journal:    journal,
		now:        now,
		start:      now(),
		bidLadder:  domain.NewLadder(domain.SideBid),
		askLadder:  domain.NewLadder(domain.SideAsk),
		pos:        domain.Position{Limit: cfg.PositionLimit},
		bids:       make(map[int64]struct{}),
		asks:       make(map[int64]struct{}),
		hedgeSides: make(map[int64]domain.Side),
		model:      NewQuoteModel(cfg.Gamma, cfg.Kappa, cfg.TickSizeCents),
		vol:        NewVolEstimator(cfg.VolWindow, cfg.VolMinSamples, cfg.VolatilitySeed),
		hedger:     NewHedger(&cfg, now()),
	}
}

func (m *MarketMaker) nextOrderID() int64 {
	m.nextID++
	return m.nextID
}

func (m *MarketMaker) ladder(side domain.Side) *domain.Ladder {
	if side == domain.SideBid {
		return m.bidLadder
	}
	return m.askLadder
}

func (m *MarketMaker) outstanding(side domain.Side) map[int64]struct{} {
	if side == domain.SideBid {
		return m.bids
	}
	return m.asks
}

// timeFrac returns the remaining fraction of the trading session,
// clamped at zero once the session is over.
func (m *MarketMaker) timeFrac() float64 {
	total := float64(m.cfg.SessionSeconds)
	frac := (total - m.now().Sub(m.start).Seconds()) / total
	if frac < 0 {
		return 0
	}
	return frac
}

// OnBookUpdate overwrites the instrument's snapshot and, for future
// updates, runs arbitrage detection and fair-value repricing. The future
// is the pricing signal; ETF updates only refresh the tradable book.
func (m *MarketMaker) OnBookUpdate(e *event.BookUpdateEvent) {
	if e.Instrument != domain.InstrumentETF && e.Instrument != domain.InstrumentFuture {
		slog.Warn("book update for unknown instrument", slog.Int("instrument", int(e.Instrument)))
		return
	}
	book := &m.books[e.Instrument]
	book.Apply(e.AskPrices, e.AskVolumes, e.BidPrices, e.BidVolumes)

	if e.Instrument == domain.InstrumentFuture && book.HasTop() {
		// A fired arbitrage takes priority over passive repricing.
		if !m.tryArbitrage() {
			m.reprice(book)
		}
		m.correctBreach()
		m.maybeHedge()
	}

	slog.Info("book update",
		slog.String("instrument", e.Instrument.String()),
		slog.Uint64("seq", e.Seq),
		slog.Int64("position", m.pos.Net),
		slog.Int64("real_bid", m.pos.Real(domain.SideBid, m.bidLadder.Resting())),
		slog.Int64("real_ask", m.pos.Real(domain.SideAsk, m.askLadder.Resting())))
}

// reprice recomputes target quotes and realigns both ladders. A
// degenerate quote aborts the cycle leaving previous ladder state intact.
func (m *MarketMaker) reprice(fut *domain.BookSnapshot) {
	bid, ask, ok := m.model.Quote(fut.BestBid(), fut.BestAsk(), m.pos.Net, m.vol.Sigma(), m.timeFrac())
	if !ok {
		slog.Debug("degenerate quote, reprice aborted")
		return
	}
	m.targetBid, m.targetAsk = bid, ask

	m.reconcile(m.bidLadder, bid)
	m.reconcile(m.askLadder, ask)
	m.placeSide(m.bidLadder)
	m.placeSide(m.askLadder)
}

// reconcile realigns one ladder to its new target and cancels the live
// orders of every level that left the window. Cancelled ids stay in the
// outstanding set until the venue confirms the terminal status.
func (m *MarketMaker) reconcile(l *domain.Ladder, target int64) {
	removed := l.Reconcile(target, m.cfg.MaxOrderTicks, m.cfg.TickSizeCents)
	for _, e := range removed {
		if e.Assigned() {
			m.sender.SendCancelOrder(e.OrderID)
		}
	}
}

// placeSide allocates available capacity-to-limit across the side's
// unassigned levels using the front-loaded split schedule. When the main
// schedule would allocate no more than one lot in total, a single coarse
// fallback split is used instead to avoid dust orders.
func (m *MarketMaker) placeSide(l *domain.Ladder) {
	side := l.Side()
	avail := m.pos.Capacity(side, l.Resting())
	if avail <= 0 {
		return
	}

	sched := m.cfg.SplitSchedule
	if scheduleTotal(avail, sched) <= m.cfg.LotSize {
		sched = m.cfg.FallbackSplit
	}

	availDec := decimal.NewFromInt(avail)
	remaining := avail
	slot := 0
	entries := l.Entries()
	for i := range entries {
		if slot >= len(sched) || remaining <= 0 {
			break
		}
		e := &entries[i]
		if e.Assigned() {
			continue
		}

		qty := availDec.Mul(sched[slot]).Floor().IntPart()
		if qty > remaining {
			qty = remaining
		}
		if qty <= 0 {
			break
		}

		id := m.nextOrderID()
		e.OrderID = id
		e.Remaining = qty
		m.outstanding(side)[id] = struct{}{}
		m.sender.SendInsertOrder(id, side, e.Price, qty, domain.GoodForDay)
		remaining -= qty
		slot++
	}
}

func scheduleTotal(avail int64, sched []decimal.Decimal) int64 {
	availDec := decimal.NewFromInt(avail)
	var total int64
	for _, f := range sched {
		total += availDec.Mul(f).Floor().IntPart()
	}
	return total
}

// OnTradeTicks feeds the volatility estimator and the hedger's reference
// window from quoted-instrument trading activity.
func (m *MarketMaker) OnTradeTicks(e *event.TradeTicksEvent) {
	if e.Instrument == domain.InstrumentETF {
		m.vol.Observe(e.BidPrices, e.AskPrices)
		if e.BidPrices[0] != 0 && e.AskPrices[0] != 0 {
			m.hedger.ObserveMid((e.BidPrices[0] + e.AskPrices[0]) / 2)
		}
	}
	slog.Debug("trade ticks",
		slog.String("instrument", e.Instrument.String()),
		slog.Uint64("seq", e.Seq),
		slog.Float64("sigma", m.vol.Sigma()))
}

// OnOrderFilled applies a partial or full fill of an own order: position
// moves by the filled volume, the ladder entry's remaining volume drops,
// and the hedger re-evaluates.
func (m *MarketMaker) OnOrderFilled(e *event.OrderFilledEvent) {
	var side domain.Side
	switch {
	case m.tracked(domain.SideBid, e.OrderID):
		side = domain.SideBid
	case m.tracked(domain.SideAsk, e.OrderID):
		side = domain.SideAsk
	default:
		slog.Warn("fill for unknown order", slog.Int64("order_id", e.OrderID))
		return
	}

	m.ladder(side).ApplyFill(e.OrderID, e.Volume)
	m.pos.ApplyFill(side, e.Volume)
	m.journalFill(e, side)

	m.maybeHedge()
	m.correctBreach()

	slog.Info("order filled",
		slog.Int64("order_id", e.OrderID),
		slog.String("side", side.String()),
		slog.Int64("price", e.Price),
		slog.Int64("volume", e.Volume),
		slog.Int64("position", m.pos.Net),
		slog.Int64("real_bid", m.pos.Real(domain.SideBid, m.bidLadder.Resting())),
		slog.Int64("real_ask", m.pos.Real(domain.SideAsk, m.askLadder.Resting())))
}

func (m *MarketMaker) tracked(side domain.Side, orderID int64) bool {
	_, ok := m.outstanding(side)[orderID]
	return ok
}

// OnOrderStatus retires an order once its remaining volume reaches zero,
// whether by cancel or full fill.
func (m *MarketMaker) OnOrderStatus(e *event.OrderStatusEvent) {
	if e.RemainingVolume == 0 {
		m.retire(e.OrderID)
	}
	slog.Debug("order status",
		slog.Int64("order_id", e.OrderID),
		slog.Int64("fill_volume", e.FillVolume),
		slog.Int64("remaining", e.RemainingVolume),
		slog.Int64("fees", e.Fees))
}

// retire drops a settled order from the ladder and the outstanding set.
func (m *MarketMaker) retire(orderID int64) {
	for _, side := range []domain.Side{domain.SideBid, domain.SideAsk} {
		if m.tracked(side, orderID) {
			delete(m.outstanding(side), orderID)
			m.ladder(side).Remove(orderID)
			return
		}
	}
}

// OnHedgeFilled records a hedge execution. Accounting already advanced
// when the hedge was instructed; the fill only feeds the journal.
func (m *MarketMaker) OnHedgeFilled(e *event.HedgeFilledEvent) {
	side, ok := m.hedgeSides[e.OrderID]
	if ok {
		delete(m.hedgeSides, e.OrderID)
	}
	if m.journal != nil {
		rec := &domain.HedgeRecord{
			OrderID:    e.OrderID,
			Side:       side.String(),
			PriceCents: e.Price,
			Volume:     e.Volume,
		}
		if err := m.journal.SaveHedge(rec); err != nil {
			slog.Error("journal hedge failed", slog.Any("error", err))
		}
	}
	slog.Debug("hedge filled",
		slog.Int64("order_id", e.OrderID),
		slog.Int64("price", e.Price),
		slog.Int64("volume", e.Volume))
}

// OnError treats a rejection of a tracked order as an implicit terminal
// status so its reserved capacity is released; generic errors are only
// logged.
func (m *MarketMaker) OnError(e *event.ErrorEvent) {
	slog.Warn("venue error",
		slog.Int64("order_id", e.OrderID),
		slog.String("message", e.Message))
	if e.OrderID == 0 {
		return
	}
	if m.tracked(domain.SideBid, e.OrderID) || m.tracked(domain.SideAsk, e.OrderID) {
		m.retire(e.OrderID)
	}
}

// maybeHedge evaluates the hedger and fires an aggressive hedge order in
// the correlated instrument when the target differs from the cumulative
// instructed volume.
func (m *MarketMaker) maybeHedge() {
	toHedge := m.hedger.Evaluate(m.pos.Net, m.now())
	if toHedge == 0 {
		return
	}

	id := m.nextOrderID()
	if toHedge < 0 {
		m.hedgeSides[id] = domain.SideAsk
		m.sender.SendHedgeOrder(id, domain.SideAsk, m.cfg.MinBidNearestTick(), -toHedge)
	} else {
		m.hedgeSides[id] = domain.SideBid
		m.sender.SendHedgeOrder(id, domain.SideBid, m.cfg.MaxAskNearestTick(), toHedge)
	}
	slog.Info("hedge order",
		slog.Int64("order_id", id),
		slog.Int64("to_hedge", toHedge),
		slog.Int64("hedge_volume", m.hedger.HedgeVolume()))
}

// correctBreach reactively cancels resting orders, most-resting-first,
// while a side's real position projects beyond the limit. Best-effort:
// a transient over-limit can persist until cancels are acknowledged.
func (m *MarketMaker) correctBreach() {
	for _, l := range []*domain.Ladder{m.bidLadder, m.askLadder} {
		excess := m.pos.Breach(l.Side(), l.Resting())
		for excess > 0 {
			e, ok := l.PopMostResting()
			if !ok {
				break
			}
			m.sender.SendCancelOrder(e.OrderID)
			excess -= e.Remaining
		}
	}
}

func (m *MarketMaker) journalFill(e *event.OrderFilledEvent, side domain.Side) {
	if m.journal == nil {
		return
	}
	rec := &domain.FillRecord{
		OrderID:    e.OrderID,
		Side:       side.String(),
		PriceCents: e.Price,
		Volume:     e.Volume,
		NetAfter:   m.pos.Net,
	}
	if err := m.journal.SaveFill(rec); err != nil {
		slog.Error("journal fill failed", slog.Any("error", err))
	}
}

// Snapshot returns a copy of the externally observable state.
func (m *MarketMaker) Snapshot() Snapshot {
	return Snapshot{
		Net:         m.pos.Net,
		RealBid:     m.pos.Real(domain.SideBid, m.bidLadder.Resting()),
		RealAsk:     m.pos.Real(domain.SideAsk, m.askLadder.Resting()),
		HedgeVolume: m.hedger.HedgeVolume(),
		Sigma:       m.vol.Sigma(),
		TargetBid:   m.targetBid,
		TargetAsk:   m.targetAsk,
		BidLevels:   m.bidLadder.Len(),
		AskLevels:   m.askLadder.Len(),
		OpenBids:    len(m.bids),
		OpenAsks:    len(m.asks),
	}
}
