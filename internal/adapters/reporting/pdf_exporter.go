package reporting

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/vulniq/vulniq/internal/core/domain"
)

// PDFExporter renders the visualization report as a PDF document.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportReport generates a PDF from an aggregated visualization report.
func (e *PDFExporter) ExportReport(report *domain.VisualizationReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addTotals(pdf, report)
	e.addSeverityTable(pdf, report)
	e.addTopAssets(pdf, report)
	e.addScanStatus(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *domain.VisualizationReport) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 14, "Vulnerability Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	if report.TimeRange != nil {
		period := fmt.Sprintf("Period: %s to %s",
			report.TimeRange.Start.Format("2006-01-02"),
			report.TimeRange.End.Format("2006-01-02"))
		pdf.CellFormat(0, 6, period, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addTotals(pdf *gofpdf.Fpdf, report *domain.VisualizationReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Overview", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)
	totals := []struct {
		label string
		value int
	}{
		{"Vulnerabilities", report.TotalVulnerabilities},
		{"Assets", report.TotalAssets},
		{"Scans", report.TotalScans},
	}
	for _, row := range totals {
		pdf.CellFormat(60, 7, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%d", row.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addSeverityTable(pdf *gofpdf.Fpdf, report *domain.VisualizationReport) {
	if len(report.SeverityDistribution) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Findings by Severity", "", 1, "L", false, 0, "")

	severities := make([]string, 0, len(report.SeverityDistribution))
	for s := range report.SeverityDistribution {
		severities = append(severities, s)
	}
	sort.Slice(severities, func(i, j int) bool {
		return domain.SeverityRank(domain.Severity(severities[i])) < domain.SeverityRank(domain.Severity(severities[j]))
	})

	pdf.SetFont("Arial", "", 11)
	for _, s := range severities {
		r, g, b := severityColor(domain.Severity(s))
		pdf.SetFillColor(r, g, b)
		pdf.CellFormat(8, 7, "", "", 0, "L", true, 0, "")
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(52, 7, " "+s, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%d", report.SeverityDistribution[s]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addTopAssets(pdf *gofpdf.Fpdf, report *domain.VisualizationReport) {
	if len(report.TopAssets) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Most Exposed Assets", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)
	for i, asset := range report.TopAssets {
		pdf.CellFormat(10, 7, fmt.Sprintf("%d.", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 7, asset.AssetID, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%d findings", asset.Count), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addScanStatus(pdf *gofpdf.Fpdf, report *domain.VisualizationReport) {
	if len(report.ScanStatusBreakdown) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Scans by Status", "", 1, "L", false, 0, "")

	statuses := make([]string, 0, len(report.ScanStatusBreakdown))
	for s := range report.ScanStatusBreakdown {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)
	for _, s := range statuses {
		pdf.CellFormat(60, 7, s, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%d", report.ScanStatusBreakdown[s]), "", 1, "L", false, 0, "")
	}
}

func severityColor(s domain.Severity) (r, g, b int) {
	switch s {
	case domain.SeverityCritical:
		return 220, 53, 69
	case domain.SeverityHigh:
		return 255, 149, 0
	case domain.SeverityMedium:
		return 255, 204, 0
	case domain.SeverityLow:
		return 52, 199, 89
	default:
		return 142, 142, 147
	}
}
