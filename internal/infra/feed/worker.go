package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"trader_go/internal/domain"
	"trader_go/internal/event"
	"trader_go/internal/infra"
)

const (
	maxRetries       = 10
	handshakeTimeout = 10 * time.Second
	readTimeout      = 60 * time.Second
)

// frame is the wire shape of one simulated-exchange message. Execution
// frames carry only the order fields; market-data frames carry the level
// arrays and a sequence number.
type frame struct {
	Type       string `json:"type"` // order_book_update, trade_ticks, order_filled, order_status, hedge_filled, error
	Instrument int    `json:"instrument"`
	Sequence   uint64 `json:"sequence"`

	AskPrices  [domain.BookDepth]int64 `json:"ask_prices"`
	AskVolumes [domain.BookDepth]int64 `json:"ask_volumes"`
	BidPrices  [domain.BookDepth]int64 `json:"bid_prices"`
	BidVolumes [domain.BookDepth]int64 `json:"bid_volumes"`

	OrderID         int64  `json:"order_id"`
	Price           int64  `json:"price"`
	Volume          int64  `json:"volume"`
	FillVolume      int64  `json:"fill_volume"`
	RemainingVolume int64  `json:"remaining_volume"`
	Fees            int64  `json:"fees"`
	Message         string `json:"message"`
}

// Worker handles the simulated-exchange WebSocket connection and
// translates frames into dispatcher events.
type Worker struct {
	url       string
	inbox     chan<- event.Event
	conn      *websocket.Conn
	mu        sync.RWMutex
	writeMu   sync.Mutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewWorker creates a new exchange gateway worker
func NewWorker(url string, inbox chan<- event.Event) *Worker {
	return &Worker{
		url:   url,
		inbox: inbox,
	}
}

// Connect starts the WebSocket connection
func (w *Worker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *Worker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Exchange connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			delay := infra.CalculateBackoff(retryCount)
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *Worker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, w.url, make(http.Header))
	if err != nil {
		return domain.NewFeedError("dial", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return err
	}

	slog.Info("Exchange connected", slog.String("url", w.url))
	return nil
}

func (w *Worker) subscribe() error {
	msg := map[string]interface{}{
		"type":    "subscribe",
		"streams": []string{"order_book", "trade_ticks", "execution"},
	}
	b, _ := json.Marshal(msg)
	if err := w.threadSafeWrite(websocket.TextMessage, b); err != nil {
		return domain.NewFeedError("subscribe", err)
	}
	return nil
}

func (w *Worker) threadSafeWrite(messageType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.RLock()
	conn := w.conn
	w.mu.RUnlock()
	if conn == nil {
		return domain.ErrConnectionFailed
	}
	return conn.WriteMessage(messageType, data)
}

func (w *Worker) readLoop(ctx context.Context) {
	defer w.closeConnection()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		conn := w.conn
		w.mu.RUnlock()
		if conn == nil {
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			slog.Warn("Exchange read failed", slog.Any("error", err))
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			slog.Warn("Malformed exchange frame", slog.Any("error", err))
			continue
		}
		if ev := w.toEvent(&f); ev != nil {
			select {
			case w.inbox <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// toEvent maps one frame onto a dispatcher event. Market-data events are
// pooled; the dispatcher releases them after processing.
func (w *Worker) toEvent(f *frame) event.Event {
	ts := time.Now().UnixMicro()
	switch f.Type {
	case "order_book_update":
		ev := event.AcquireBookUpdateEvent()
		ev.Seq = f.Sequence
		ev.Ts = ts
		ev.Instrument = domain.Instrument(f.Instrument)
		ev.AskPrices = f.AskPrices
		ev.AskVolumes = f.AskVolumes
		ev.BidPrices = f.BidPrices
		ev.BidVolumes = f.BidVolumes
		return ev
	case "trade_ticks":
		ev := event.AcquireTradeTicksEvent()
		ev.Seq = f.Sequence
		ev.Ts = ts
		ev.Instrument = domain.Instrument(f.Instrument)
		ev.AskPrices = f.AskPrices
		ev.AskVolumes = f.AskVolumes
		ev.BidPrices = f.BidPrices
		ev.BidVolumes = f.BidVolumes
		return ev
	case "order_filled":
		return &event.OrderFilledEvent{
			BaseEvent: event.BaseEvent{Ts: ts},
			OrderID:   f.OrderID,
			Price:     f.Price,
			Volume:    f.Volume,
		}
	case "order_status":
		return &event.OrderStatusEvent{
			BaseEvent:       event.BaseEvent{Ts: ts},
			OrderID:         f.OrderID,
			FillVolume:      f.FillVolume,
			RemainingVolume: f.RemainingVolume,
			Fees:            f.Fees,
		}
	case "hedge_filled":
		return &event.HedgeFilledEvent{
			BaseEvent: event.BaseEvent{Ts: ts},
			OrderID:   f.OrderID,
			Price:     f.Price,
			Volume:    f.Volume,
		}
	case "error":
		return &event.ErrorEvent{
			BaseEvent: event.BaseEvent{Ts: ts},
			OrderID:   f.OrderID,
			Message:   f.Message,
		}
	default:
		slog.Warn("Unknown frame type", slog.String("type", f.Type))
		return nil
	}
}

func (w *Worker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	w.connected = false
}

// Disconnect stops the worker and closes the connection.
func (w *Worker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}

// IsConnected reports whether a live connection exists.
func (w *Worker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}
