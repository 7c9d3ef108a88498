package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trader_go/internal/app"
	"trader_go/internal/domain"
	"trader_go/internal/engine"
	"trader_go/internal/event"
	"trader_go/internal/execution"
	"trader_go/internal/infra/feed"
	"trader_go/internal/service"
	"trader_go/internal/strategy"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 3. Prometheus endpoint
	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("Metrics server started", slog.String("addr", cfg.Metrics.Addr))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				slog.Error("Metrics server failed", slog.Any("error", err))
			}
		}()
	}

	// 4. Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Event pool warmup before the hotpath starts
	event.Warmup()

	// 6. Wire venue -> strategy -> dispatcher
	monitor := service.NewMonitor()

	var maker *strategy.MarketMaker
	dispatcher := engine.NewDispatcher(cfg.Feed.InboxSize, lazyStrategy{&maker}, monitor.Update)

	venue := execution.NewPaperVenue(dispatcher.Inbox())
	sender := execution.NewInstrumentedSender(venue)

	var journal domain.Journal
	if bootstrap.Journal != nil {
		journal = bootstrap.Journal
	}
	maker = strategy.NewMarketMaker(cfg.Strategy, sender, journal, nil)

	// Start dispatcher in its own goroutine (the hotpath loop)
	go dispatcher.Run(ctx)
	slog.InfoContext(ctx, "Dispatcher (hotpath) started")

	// 7. Market-data gateway
	if cfg.Feed.Mode == "ws" {
		feedCh := make(chan event.Event, cfg.Feed.InboxSize)
		worker := feed.NewWorker(cfg.Feed.WSURL, feedCh)
		if err := worker.Connect(ctx); err != nil {
			slog.Error("Failed to connect exchange feed", slog.Any("error", err))
		}
		defer worker.Disconnect()

		// Tee ETF book updates into the paper venue so aggressive orders
		// fill against current liquidity, then forward to the dispatcher.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-feedCh:
					if book, ok := ev.(*event.BookUpdateEvent); ok && book.Instrument == domain.InstrumentETF {
						var snap domain.BookSnapshot
						snap.Apply(book.AskPrices, book.AskVolumes, book.BidPrices, book.BidVolumes)
						venue.UpdateBook(snap)
					}
					select {
					case dispatcher.Inbox() <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
		slog.InfoContext(ctx, "Exchange feed started", slog.String("url", cfg.Feed.WSURL))
	}

	slog.InfoContext(ctx, "Trader fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	snap, _ := monitor.Latest()
	bootstrap.Shutdown(snap.Net)
	slog.Info("Shutting down gracefully...", slog.Int64("net", snap.Net))
}

// lazyStrategy defers to a *MarketMaker assigned after the dispatcher is
// constructed; the venue needs the dispatcher inbox and the strategy
// needs the venue, so one of the references has to be late-bound.
type lazyStrategy struct {
	maker **strategy.MarketMaker
}

func (l lazyStrategy) OnBookUpdate(e *event.BookUpdateEvent)   { (*l.maker).OnBookUpdate(e) }
func (l lazyStrategy) OnTradeTicks(e *event.TradeTicksEvent)   { (*l.maker).OnTradeTicks(e) }
func (l lazyStrategy) OnOrderFilled(e *event.OrderFilledEvent) { (*l.maker).OnOrderFilled(e) }
func (l lazyStrategy) OnOrderStatus(e *event.OrderStatusEvent) { (*l.maker).OnOrderStatus(e) }
func (l lazyStrategy) OnHedgeFilled(e *event.HedgeFilledEvent) { (*l.maker).OnHedgeFilled(e) }
func (l lazyStrategy) OnError(e *event.ErrorEvent)             { (*l.maker).OnError(e) }
func (l lazyStrategy) Snapshot() strategy.Snapshot             { return (*l.maker).Snapshot() }
