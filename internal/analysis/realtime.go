// Package analysis wires the recognition pipeline together for the
// command line entry points.
package analysis

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/faunadex/faunadex-go/internal/api"
	"github.com/faunadex/faunadex-go/internal/classifier"
	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/datastore"
	"github.com/faunadex/faunadex-go/internal/detector"
	"github.com/faunadex/faunadex-go/internal/enrichment"
	"github.com/faunadex/faunadex-go/internal/ensemble"
	"github.com/faunadex/faunadex-go/internal/imagestore"
	"github.com/faunadex/faunadex-go/internal/logging"
	"github.com/faunadex/faunadex-go/internal/notification"
	"github.com/faunadex/faunadex-go/internal/observability"
	"github.com/faunadex/faunadex-go/internal/processor"
	"github.com/faunadex/faunadex-go/internal/resolver"
)

var logger = logging.ForService("analysis")

// shutdownTimeout bounds how long a graceful HTTP shutdown may take.
const shutdownTimeout = 10 * time.Second

// RealtimeAnalysis starts the full recognition service and blocks until a
// termination signal arrives or a component fails.
func RealtimeAnalysis(settings *conf.Settings) error {
	fmt.Printf("Starting FaunaDex in realtime mode, port %s\n", settings.WebServer.Port)

	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer closeDataStore(store)

	pipeline, err := buildPipeline(settings, store)
	if err != nil {
		return err
	}
	defer pipeline.close()

	sessions := processor.NewSessionManager(pipeline.processor)
	server := api.New(settings, store, pipeline.processor, sessions, pipeline.thumbs, pipeline.metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// pipeline holds the shared components of the recognition service. The
// model instances are loaded once here and injected everywhere they are
// needed.
type pipeline struct {
	processor *processor.Processor
	thumbs    *imagestore.Store
	metrics   *observability.Metrics
	publisher *notification.MQTTPublisher
}

func buildPipeline(settings *conf.Settings, store datastore.Interface) (*pipeline, error) {
	det, err := detector.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize detector: %w", err)
	}

	var fallback ensemble.FallbackClassifier
	if settings.Classifier.Enabled {
		cls, err := classifier.New(settings)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize fallback classifier: %w", err)
		}
		fallback = cls
	}
	engine := ensemble.New(settings.Ensemble, fallback)
	metrics := observability.New()

	enricher := enrichment.NewClient(settings.Enrichment)
	enricher.Metrics = metrics
	res := resolver.New(store, enricher, settings.Enrichment)

	thumbs, err := imagestore.New(settings.Thumbnails)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize thumbnail store: %w", err)
	}

	proc := &processor.Processor{
		Settings: settings,
		Store:    store,
		Detector: det,
		Ensemble: engine,
		Resolver: res,
		Thumbs:   thumbs,
		Metrics:  metrics,
	}

	p := &pipeline{processor: proc, thumbs: thumbs, metrics: metrics}

	if settings.Realtime.MQTT.Enabled {
		publisher, err := notification.NewMQTTPublisher(settings.Realtime.MQTT)
		if err != nil {
			// The MQTT broker is an optional downstream, the service
			// still works without it.
			logger.Warn("MQTT publisher unavailable", "broker", settings.Realtime.MQTT.Broker, "error", err)
		} else {
			proc.Publisher = publisher
			p.publisher = publisher
		}
	}

	return p, nil
}

func (p *pipeline) close() {
	if p.publisher != nil {
		p.publisher.Close()
	}
}

func closeDataStore(store datastore.Interface) {
	if err := store.Close(); err != nil {
		logger.Error("failed to close datastore", "error", err)
	}
}
