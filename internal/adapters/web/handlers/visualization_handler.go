package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/vulniq/vulniq/internal/adapters/reporting"
	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/ports"
	"github.com/vulniq/vulniq/internal/core/services/export"
	"github.com/vulniq/vulniq/internal/core/services/report"
)

// VisualizationHandler serves the aggregated chart report and its CSV and PDF
// download variants.
type VisualizationHandler struct {
	Reporter    *report.Reporter
	Client      ports.UpstreamClient
	PDFExporter *reporting.PDFExporter
}

// NewVisualizationHandler creates a new VisualizationHandler.
func NewVisualizationHandler(reporter *report.Reporter, client ports.UpstreamClient) *VisualizationHandler {
	return &VisualizationHandler{
		Reporter:    reporter,
		Client:      client,
		PDFExporter: reporting.NewPDFExporter(),
	}
}

// HandleReport returns the chart-shaped aggregation as JSON.
func (h *VisualizationHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reporter.Generate(r.Context(), parseRange(r))
	if err != nil {
		log.Printf("visualization report failed: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleReportPDF returns the same aggregation rendered as a PDF attachment.
func (h *VisualizationHandler) HandleReportPDF(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reporter.Generate(r.Context(), parseRange(r))
	if err != nil {
		log.Printf("visualization report failed: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	data, err := h.PDFExporter.ExportReport(out)
	if err != nil {
		log.Printf("PDF export failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "PDF generation failed"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=vulniq_report.pdf")
	w.Write(data)
}

// HandleExportVulnerabilities streams the vulnerability listing for the range
// as a CSV attachment.
func (h *VisualizationHandler) HandleExportVulnerabilities(w http.ResponseWriter, r *http.Request) {
	vulns, err := h.Client.ListVulnerabilities(r.Context(), "", parseRange(r), "")
	if err != nil {
		log.Printf("vulnerability export failed: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=vulniq_vulnerabilities.csv")
	if err := export.WriteVulnerabilitiesCSV(w, vulns); err != nil {
		log.Printf("CSV export error: %v", err)
	}
}

// parseRange reads startTime/endTime query parameters. Accepted formats:
// RFC3339, YYYY-MM-DD, unix seconds and unix milliseconds. Unparseable
// values degrade to an open boundary; two absent values mean no filter.
func parseRange(r *http.Request) *domain.TimeRange {
	start, okStart := parseTimeParam(r.URL.Query().Get("startTime"))
	end, okEnd := parseTimeParam(r.URL.Query().Get("endTime"))
	if !okStart && !okEnd {
		return nil
	}
	if !okEnd {
		end = time.Now()
	}
	return &domain.TimeRange{Start: start, End: end}
}

func parseTimeParam(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		// Heuristic: values past the year 33658 in seconds are milliseconds.
		if n > 1e12 {
			return time.UnixMilli(n), true
		}
		return time.Unix(n, 0), true
	}
	return time.Time{}, false
}
