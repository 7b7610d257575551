package itinerary

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/roamgen/roamgen/app/observability/metrics"
	"github.com/roamgen/roamgen/internal/api"
	"github.com/roamgen/roamgen/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GenerateItinerary handles the travel-preference form submission.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateItinerary").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")
	start := time.Now()

	var query types.TravelQuery
	if err := api.DecodeJSONBody(w, r, &query); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if query.Destination == "" {
		l.ErrorContext(ctx, "Destination is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Destination is required")
		return
	}

	result, err := h.service.Generate(ctx, query)
	if m := metrics.Get(); m != nil {
		m.ItineraryRequestsTotal.Add(ctx, 1)
		m.ItineraryDurationSecs.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrNotConfigured) {
			l.ErrorContext(ctx, "Completion provider not configured")
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Itinerary service is not available")
			return
		}
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "Failed to generate itinerary")
		return
	}

	l.InfoContext(ctx, "Itinerary generated successfully",
		slog.String("destination", query.Destination),
		slog.Int("places", len(result.Places)))
	span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(http.StatusOK))
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}
