package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pfagrelius/skyfit-go/internal/conf"
	"github.com/pfagrelius/skyfit-go/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Endpoint serves the Prometheus-compatible metrics over HTTP. It is only
// started in watch mode, where the pipeline runs long enough for scraping
// to be useful.
type Endpoint struct {
	server        *http.Server
	listenAddress string
	metrics       *Metrics
}

// NewEndpoint creates a new metrics endpoint from the application
// settings. It returns an error if metrics are not enabled.
func NewEndpoint(settings *conf.Settings, metrics *Metrics) (*Endpoint, error) {
	if !settings.Metrics.Enabled {
		return nil, fmt.Errorf("metrics not enabled in settings")
	}

	return &Endpoint{
		listenAddress: settings.Metrics.Listen,
		metrics:       metrics,
	}, nil
}

// Start runs the HTTP server in a separate goroutine and listens for a
// quit signal to shut down gracefully.
func (e *Endpoint) Start(wg *sync.WaitGroup, quitChan <-chan struct{}) {
	mux := http.NewServeMux()
	e.metrics.RegisterHandlers(mux)

	e.server = &http.Server{
		Addr:    e.listenAddress,
		Handler: mux,
	}

	log := logging.ForService("observability")

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("metrics endpoint starting", "address", e.listenAddress)
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics HTTP server error", "error", err)
		}
	}()

	go e.gracefulShutdown(quitChan, log)
}

func (e *Endpoint) gracefulShutdown(quitChan <-chan struct{}, log *slog.Logger) {
	<-quitChan
	log.Info("stopping metrics server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.server.Shutdown(ctx); err != nil {
		log.Error("metrics server shutdown error", "error", err)
	}
}
