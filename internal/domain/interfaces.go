package domain

import (
	"context"
)

// OrderSender is the fire-and-forget outbound command surface of the
// order-routing transport. Calls return immediately; fills, statuses and
// rejections arrive later as separate events on the dispatcher inbox.
type OrderSender interface {
	SendInsertOrder(orderID int64, side Side, price, volume int64, lifespan Lifespan)
	SendCancelOrder(orderID int64)
	SendHedgeOrder(orderID int64, side Side, price, volume int64)
}

// FeedWorker defines the interface for market-data gateway connectors
type FeedWorker interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}

// Journal defines how fills and hedge fills are persisted for
// post-session analysis.
type Journal interface {
	SaveFill(fill *FillRecord) error
	SaveHedge(hedge *HedgeRecord) error
	CloseSession(endNet int64) error
}
