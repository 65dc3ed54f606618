package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the bot.
type Metrics struct {
	EventsHandled     *prometheus.CounterVec // labels: kind={follow,postback,text}, outcome={prompt,confirmation,forecast_request,error}
	LocationsResolved prometheus.Counter
	GeocodeRequests   *prometheus.CounterVec // labels: outcome={success,not_found,error}
	ForecastFetches   *prometheus.CounterVec // labels: outcome={success,error}
	Notifications     *prometheus.CounterVec // labels: outcome={sent,skipped,error}
	WebhookDuration   prometheus.Histogram
}

// NewMetrics creates and registers all bot metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EventsHandled,
		m.LocationsResolved,
		m.GeocodeRequests,
		m.ForecastFetches,
		m.Notifications,
		m.WebhookDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "events_handled_total",
			Help:      "Inbound events by kind and response outcome.",
		}, []string{"kind", "outcome"}),
		LocationsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "locations_resolved_total",
			Help:      "Completed location registrations.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "geocode_requests_total",
			Help:      "Free-text geocoding attempts by outcome.",
		}, []string{"outcome"}),
		ForecastFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "forecast_fetches_total",
			Help:      "Forecast API fetches by outcome.",
		}, []string{"outcome"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "notifications_total",
			Help:      "Daily notification pushes by outcome.",
		}, []string{"outcome"}),
		WebhookDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_bot",
			Name:      "webhook_duration_seconds",
			Help:      "Duration of webhook event handling.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}
