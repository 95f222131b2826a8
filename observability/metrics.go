package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ghostmaze",
			Subsystem: "sim",
			Name:      "ticks_total",
			Help:      "Simulation ticks processed.",
		},
	)
	roleSwapsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ghostmaze",
			Subsystem: "meta",
			Name:      "role_swaps_total",
			Help:      "Role-swap meta-rule activations.",
		},
	)
	convergesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ghostmaze",
			Subsystem: "meta",
			Name:      "converges_total",
			Help:      "Converge meta-rule activations.",
		},
	)
	roundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ghostmaze",
			Subsystem: "sim",
			Name:      "rounds_total",
			Help:      "Finished rounds by outcome.",
		},
		[]string{"outcome"},
	)
	connectedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ghostmaze",
			Subsystem: "net",
			Name:      "connected_clients",
			Help:      "Currently connected websocket clients.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ticksTotal, roleSwapsTotal, convergesTotal, roundsTotal, connectedClients)
	})
}

func RecordTick() {
	ticksTotal.Inc()
}

func RecordMetaEvent(kind string) {
	switch kind {
	case "role_swap":
		roleSwapsTotal.Inc()
	case "converge":
		convergesTotal.Inc()
	}
}

func RecordRound(won bool) {
	outcome := "lost"
	if won {
		outcome = "won"
	}
	roundsTotal.WithLabelValues(outcome).Inc()
}

func SetConnectedClients(n int) {
	connectedClients.Set(float64(n))
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
