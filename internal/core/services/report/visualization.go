package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/ports"
)

// topAssetLimit caps the "most exposed assets" chart.
const topAssetLimit = 5

// Reporter aggregates upstream data into the chart-shaped visualization
// report. Aggregation is pure reshaping of already-fetched listings.
type Reporter struct {
	client ports.UpstreamClient
	now    func() time.Time
}

// NewReporter creates a reporter backed by the given upstream client.
func NewReporter(client ports.UpstreamClient) *Reporter {
	return &Reporter{client: client, now: time.Now}
}

// NewReporterWithClock creates a reporter with a fixed clock for tests.
func NewReporterWithClock(client ports.UpstreamClient, now func() time.Time) *Reporter {
	return &Reporter{client: client, now: now}
}

// Generate fetches vulnerabilities, assets and scans for the range and
// reshapes them into chart series.
func (r *Reporter) Generate(ctx context.Context, tr *domain.TimeRange) (*domain.VisualizationReport, error) {
	vulns, err := r.client.ListVulnerabilities(ctx, "", tr, "")
	if err != nil {
		return nil, fmt.Errorf("fetch vulnerabilities: %w", err)
	}
	assets, err := r.client.ListAssets(ctx, tr, "")
	if err != nil {
		return nil, fmt.Errorf("fetch assets: %w", err)
	}
	scans, err := r.client.ListScans(ctx, tr, "")
	if err != nil {
		return nil, fmt.Errorf("fetch scans: %w", err)
	}

	out := &domain.VisualizationReport{
		GeneratedAt:          r.now(),
		TimeRange:            tr,
		TotalVulnerabilities: len(vulns),
		TotalAssets:          len(assets),
		TotalScans:           len(scans),
		SeverityDistribution: make(map[string]int),
		ScanStatusBreakdown:  make(map[string]int),
		TopAssets:            []domain.AssetExposure{},
		DailyTrend:           []domain.TrendPoint{},
	}

	exposure := make(map[string]int)
	trend := make(map[string]int)
	for _, v := range vulns {
		out.SeverityDistribution[string(v.Severity)]++
		for _, assetID := range v.AffectedAssets {
			exposure[assetID]++
		}
		if !v.LastSeen.IsZero() {
			trend[v.LastSeen.Format("2006-01-02")]++
		}
	}
	for _, s := range scans {
		status := s.Status
		if status == "" {
			status = "unknown"
		}
		out.ScanStatusBreakdown[status]++
	}

	out.TopAssets = topAssets(exposure, topAssetLimit)
	out.DailyTrend = dailyTrend(trend)
	return out, nil
}

// topAssets returns the n most exposed assets, count descending with asset id
// as the tie-break so the ordering is reproducible.
func topAssets(exposure map[string]int, n int) []domain.AssetExposure {
	ranked := make([]domain.AssetExposure, 0, len(exposure))
	for id, count := range exposure {
		ranked = append(ranked, domain.AssetExposure{AssetID: id, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].AssetID < ranked[j].AssetID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func dailyTrend(trend map[string]int) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(trend))
	for date, count := range trend {
		points = append(points, domain.TrendPoint{Date: date, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
