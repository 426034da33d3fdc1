package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event stream metrics
var (
	EventsForwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imview_events_forwarded_total",
			Help: "Total events forwarded to the consumer stream",
		},
		[]string{"type"},
	)

	WatchEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imview_watch_events_total",
			Help: "Total raw events received from the directory watch",
		},
		[]string{"op"},
	)

	WatchEventsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imview_watch_events_dropped_total",
			Help: "Raw watch events dropped by classification (unrecognized paths or ops)",
		},
	)

	NotificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imview_notifications_total",
			Help: "Times the repaint hook was invoked",
		},
	)
)

// Decode pool metrics
var (
	DecodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imview_decode_total",
			Help: "Total decode jobs completed",
		},
		[]string{"kind", "status"}, // kind: thumbnail|image, status: ok|error
	)

	DecodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imview_decode_duration_seconds",
			Help:    "Decode job duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	DecodeWorkers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "imview_decode_workers",
			Help: "Configured decode pool sizes",
		},
		[]string{"kind"},
	)
)

// Discovery metrics
var (
	DiscoveredFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "imview_discovered_files",
			Help: "Image files discovered during initial path resolution",
		},
	)

	WatchActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "imview_watch_active",
			Help: "Whether a live directory watch is running (1) or not (0)",
		},
	)
)
