package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/vulniq/vulniq/internal/adapters/web/middleware"
)

func SetupRoutes(s *Server) http.Handler {
	mux := http.NewServeMux()

	// The ask endpoint fans out to the upstream API, so it gets its own
	// budget separate from the cheap read endpoints.
	askLimiter := middleware.NewRateLimiter(30, 1*time.Minute)
	rateLimit := middleware.RateLimitMiddleware(askLimiter)

	mux.Handle("POST /ask", rateLimit(http.HandlerFunc(s.AskHandler.HandleAsk)))

	mux.HandleFunc("GET /api/config", s.ConfigHandler.HandleGetConfig)
	mux.HandleFunc("POST /api/config", s.ConfigHandler.HandleUpdateConfig)

	mux.HandleFunc("GET /api/v1/visualizations/report", s.VisualizationHandler.HandleReport)
	mux.HandleFunc("GET /api/v1/visualizations/report/pdf", s.VisualizationHandler.HandleReportPDF)
	mux.HandleFunc("GET /api/v1/visualizations/export/vulnerabilities", s.VisualizationHandler.HandleExportVulnerabilities)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	corsWrapper := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	return middleware.LoggingMiddleware(corsWrapper.Handler(mux))
}
