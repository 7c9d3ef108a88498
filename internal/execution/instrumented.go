package execution

import (
	"trader_go/internal/domain"
	"trader_go/internal/infra"
)

// InstrumentedSender decorates an OrderSender with prometheus counters.
// The strategy stays metrics-free; every outbound command passes through
// here.
type InstrumentedSender struct {
	next domain.OrderSender
}

// NewInstrumentedSender wraps next with command metrics.
func NewInstrumentedSender(next domain.OrderSender) *InstrumentedSender {
	return &InstrumentedSender{next: next}
}

func (s *InstrumentedSender) SendInsertOrder(orderID int64, side domain.Side, price, volume int64, lifespan domain.Lifespan) {
	infra.RecordOrder(side.String(), lifespan.String())
	s.next.SendInsertOrder(orderID, side, price, volume, lifespan)
}

func (s *InstrumentedSender) SendCancelOrder(orderID int64) {
	infra.RecordCancel()
	s.next.SendCancelOrder(orderID)
}

func (s *InstrumentedSender) SendHedgeOrder(orderID int64, side domain.Side, price, volume int64) {
	infra.RecordHedge(side.String())
	s.next.SendHedgeOrder(orderID, side, price, volume)
}
