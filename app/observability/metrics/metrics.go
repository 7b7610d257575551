package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	ItineraryRequestsTotal  metric.Int64Counter
	ItineraryDurationSecs   metric.Float64Histogram
	ProviderCallDurationSec metric.Float64Histogram
	ProviderErrorsTotal     metric.Int64Counter
	RecoveryFallbacksTotal  metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("Roamgen")
		var err error
		m := &AppMetrics{}

		m.ItineraryRequestsTotal, err = meter.Int64Counter(
			"itinerary_requests_total",
			metric.WithDescription("Total number of itinerary requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_requests_total: %v", err)
		}

		m.ItineraryDurationSecs, err = meter.Float64Histogram(
			"itinerary_duration_seconds",
			metric.WithDescription("Duration of itinerary requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_duration_seconds: %v", err)
		}

		m.ProviderCallDurationSec, err = meter.Float64Histogram(
			"provider_call_duration_seconds",
			metric.WithDescription("Duration of completion provider calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_call_duration_seconds: %v", err)
		}

		m.ProviderErrorsTotal, err = meter.Int64Counter(
			"provider_errors_total",
			metric.WithDescription("Total number of failed completion provider calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_errors_total: %v", err)
		}

		m.RecoveryFallbacksTotal, err = meter.Int64Counter(
			"recovery_fallbacks_total",
			metric.WithDescription("Total number of responses that fell back to raw model text"),
			metric.WithUnit("{response}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recovery_fallbacks_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the initialized metrics instance. InitAppMetrics must have
// been called first; callers get a nil receiver otherwise and should
// treat it as metrics-disabled.
func Get() *AppMetrics {
	return appMetrics
}
