// Prometheus metrics for observability.
//
// Counters track dispatcher throughput, sequence-guard drops and outbound
// commands; gauges expose the net position, cumulative hedge volume and
// the current volatility estimate. Registered in init() and served by the
// HTTP handler started in main.go at /metrics.
package infra

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxEvents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trader_events_processed_total",
			Help: "Events processed by the dispatcher",
		},
	)

	mtxDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trader_events_dropped_total",
			Help: "Events dropped by the sequence guard",
		},
		[]string{"stream"},
	)

	mtxOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trader_orders_total",
			Help: "Insert orders sent",
		},
		[]string{"side", "lifespan"},
	)

	mtxCancels = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trader_cancels_total",
			Help: "Cancel commands sent",
		},
	)

	mtxHedges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trader_hedges_total",
			Help: "Hedge orders sent",
		},
		[]string{"side"},
	)

	mtxFills = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trader_fills_total",
			Help: "Own-order fill events received",
		},
	)

	gaugePosition = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trader_position_lots",
			Help: "Net position in lots",
		},
	)

	gaugeHedgeVolume = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trader_hedge_volume_lots",
			Help: "Cumulative instructed hedge volume in lots",
		},
	)

	gaugeVolatility = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trader_volatility",
			Help: "Current log-return volatility estimate",
		},
	)
)

func init() {
	prometheus.MustRegister(
		mtxEvents,
		mtxDropped,
		mtxOrders,
		mtxCancels,
		mtxHedges,
		mtxFills,
		gaugePosition,
		gaugeHedgeVolume,
		gaugeVolatility,
	)
}

// RecordEvent counts one processed event.
func RecordEvent() { mtxEvents.Inc() }

// RecordDroppedEvent counts one sequence-guard drop for the stream.
func RecordDroppedEvent(stream string) { mtxDropped.WithLabelValues(stream).Inc() }

// RecordOrder counts one insert command.
func RecordOrder(side, lifespan string) { mtxOrders.WithLabelValues(side, lifespan).Inc() }

// RecordCancel counts one cancel command.
func RecordCancel() { mtxCancels.Inc() }

// RecordHedge counts one hedge command.
func RecordHedge(side string) { mtxHedges.WithLabelValues(side).Inc() }

// RecordFill counts one own-order fill event.
func RecordFill() { mtxFills.Inc() }

// SetPosition publishes the net position gauge.
func SetPosition(lots int64) { gaugePosition.Set(float64(lots)) }

// SetHedgeVolume publishes the cumulative hedge volume gauge.
func SetHedgeVolume(lots int64) { gaugeHedgeVolume.Set(float64(lots)) }

// SetVolatility publishes the sigma gauge.
func SetVolatility(sigma float64) { gaugeVolatility.Set(sigma) }
