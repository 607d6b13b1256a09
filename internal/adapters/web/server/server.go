package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/vulniq/vulniq/internal/adapters/web/handlers"
	"github.com/vulniq/vulniq/internal/core/ports"
	"github.com/vulniq/vulniq/internal/core/services/classify"
	"github.com/vulniq/vulniq/internal/core/services/dispatch"
	"github.com/vulniq/vulniq/internal/core/services/report"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server handles the HTTP surface: the ask endpoint, the configuration API
// and the visualization endpoints.
type Server struct {
	Addr string

	AskHandler           *handlers.AskHandler
	ConfigHandler        *handlers.ConfigHandler
	VisualizationHandler *handlers.VisualizationHandler

	srv *http.Server
}

// NewServer wires the handlers around the given client and settings store.
func NewServer(addr string, client ports.UpstreamClient, store ports.SettingsStore) *Server {
	classifier := classify.New()
	dispatcher := dispatch.New(client)
	reporter := report.NewReporter(client)

	return &Server{
		Addr:                 addr,
		AskHandler:           handlers.NewAskHandler(classifier, dispatcher),
		ConfigHandler:        handlers.NewConfigHandler(store),
		VisualizationHandler: handlers.NewVisualizationHandler(reporter, client),
	}
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry; "vulniq-server" names the root span.
	instrumentedHandler := otelhttp.NewHandler(handler, "vulniq-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Println("Web server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
