package container

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roamgen/roamgen/config"
	"github.com/roamgen/roamgen/internal/api/diagnostics"
	generativeAI "github.com/roamgen/roamgen/internal/api/generative_ai"
	"github.com/roamgen/roamgen/internal/api/itinerary"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Sink             diagnostics.Sink
	ItineraryHandler *itinerary.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Diagnostics sink: failures here degrade to a no-op sink rather than
	// blocking startup, recovery logging is best-effort by contract.
	var sink diagnostics.Sink = diagnostics.NopSink{}
	if cfg.Diagnostics.Enabled {
		fileSink, err := diagnostics.NewFileSink(cfg.Diagnostics.Path, logger)
		if err != nil {
			logger.Warn("Failed to open diagnostics sink, recovery failures will not be recorded",
				slog.String("path", cfg.Diagnostics.Path), slog.Any("error", err))
		} else {
			sink = fileSink
		}
	}

	// The provider stays nil when the credential is missing; the service
	// then reports every request as unavailable instead of calling out.
	var provider itinerary.Provider
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Gemini.Model, cfg.Gemini.Temperature)
	switch {
	case err == nil:
		provider = aiClient
	case errors.Is(err, generativeAI.ErrMissingAPIKey):
		logger.Warn("GOOGLE_GEMINI_API_KEY not set, itinerary generation will respond as unavailable")
	default:
		logger.Error("Failed to construct AI client, itinerary generation will respond as unavailable",
			slog.Any("error", err))
	}

	itineraryService := itinerary.NewServiceImpl(provider, sink, cfg.Gemini.Timeout, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Sink:             sink,
		ItineraryHandler: itineraryHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if closer, ok := c.Sink.(*diagnostics.FileSink); ok {
		if err := closer.Close(); err != nil {
			c.Logger.Warn("Failed to close diagnostics sink", slog.Any("error", err))
		}
	}
}
