package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/roamgen/roamgen/app/observability/metrics"
	"github.com/roamgen/roamgen/internal/api/diagnostics"
	"github.com/roamgen/roamgen/internal/types"
)

var (
	// ErrNotConfigured signals the completion provider credential was
	// absent at startup; requests must not reach the provider at all.
	ErrNotConfigured = errors.New("completion provider is not configured")
	// ErrProviderFailure wraps failures of the completion call itself.
	ErrProviderFailure = errors.New("completion provider call failed")
)

// Provider is the outbound completion collaborator: one prompt in, raw
// model text out.
type Provider interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary generation.
type Service interface {
	Generate(ctx context.Context, query types.TravelQuery) (*types.ItineraryResult, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger      *slog.Logger
	provider    Provider
	sink        diagnostics.Sink
	callTimeout time.Duration
}

// NewServiceImpl creates a new itinerary service instance. A nil provider
// means the credential was missing at startup; every Generate call then
// reports ErrNotConfigured.
func NewServiceImpl(provider Provider, sink diagnostics.Sink, callTimeout time.Duration, logger *slog.Logger) *ServiceImpl {
	if sink == nil {
		sink = diagnostics.NopSink{}
	}
	return &ServiceImpl{
		logger:      logger,
		provider:    provider,
		sink:        sink,
		callTimeout: callTimeout,
	}
}

// Generate builds the prompt, runs the single provider call and threads
// its text through the recovery pipeline. The pipeline itself never
// fails; the only errors out of here are the configuration and provider
// ones.
func (s *ServiceImpl) Generate(ctx context.Context, query types.TravelQuery) (*types.ItineraryResult, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("query.destination", query.Destination),
	))
	defer span.End()

	l := s.logger.With(slog.String("service", "Generate"))

	if s.provider == nil {
		l.WarnContext(ctx, "Itinerary requested while provider is not configured")
		span.SetStatus(codes.Error, "provider not configured")
		return nil, ErrNotConfigured
	}

	prompt := generateItineraryPrompt(query)
	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.provider.GenerateContent(ctx, prompt)
	if m := metrics.Get(); m != nil {
		m.ProviderCallDurationSec.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		l.ErrorContext(ctx, "Completion provider call failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		if m := metrics.Get(); m != nil {
			m.ProviderErrorsTotal.Add(ctx, 1)
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	result, fellBack := RecoverItinerary(text, s.sink)
	if fellBack {
		l.WarnContext(ctx, "No structured JSON recovered from model text, returning raw fallback",
			slog.Int("response_length", len(text)))
		span.AddEvent("recovery fallback")
		if m := metrics.Get(); m != nil {
			m.RecoveryFallbacksTotal.Add(ctx, 1)
		}
	}

	span.SetAttributes(attribute.Int("places.count", len(result.Places)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return result, nil
}
