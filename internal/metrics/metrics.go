// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request latency by route and status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
			},
		},
		[]string{"method", "path", "status"},
	)

	// Redemptions counts confirmed campaign redemptions recorded by the
	// billing webhook, by campaign slug and outcome.
	Redemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_redemptions_total",
			Help: "Campaign redemptions recorded from billing webhook events",
		},
		[]string{"campaign", "outcome"}, // recorded, sold_out, duplicate, rejected
	)

	// PromoClicks counts promo link redirects served.
	PromoClicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_link_clicks_total",
			Help: "Promo link redirects served",
		},
		[]string{"campaign"},
	)
)

// RecordRequestDuration records the duration of an HTTP request.
func RecordRequestDuration(method, path, status string, seconds float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

// RecordRedemption records a webhook redemption outcome.
func RecordRedemption(campaignSlug, outcome string) {
	Redemptions.WithLabelValues(campaignSlug, outcome).Inc()
}

// RecordPromoClick records a served promo link redirect.
func RecordPromoClick(campaignSlug string) {
	PromoClicks.WithLabelValues(campaignSlug).Inc()
}
