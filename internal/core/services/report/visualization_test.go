package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulniq/vulniq/internal/core/domain"
)

type stubUpstream struct {
	vulns  []domain.Vulnerability
	assets []domain.Asset
	scans  []domain.Scan
	err    error
}

func (s *stubUpstream) ListVulnerabilities(context.Context, domain.Severity, *domain.TimeRange, string) ([]domain.Vulnerability, error) {
	return s.vulns, s.err
}

func (s *stubUpstream) ListAssets(context.Context, *domain.TimeRange, string) ([]domain.Asset, error) {
	return s.assets, s.err
}

func (s *stubUpstream) ListScans(context.Context, *domain.TimeRange, string) ([]domain.Scan, error) {
	return s.scans, s.err
}

func (s *stubUpstream) LaunchScan(context.Context, string) (*domain.Scan, error) {
	return nil, s.err
}

func (s *stubUpstream) CreateAndLaunchScan(context.Context, string, string) (*domain.Scan, error) {
	return nil, s.err
}

func TestReporter_Generate(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
	}
	upstream := &stubUpstream{
		vulns: []domain.Vulnerability{
			{Severity: domain.SeverityCritical, AffectedAssets: []string{"asset-1", "asset-2"}, LastSeen: day(10)},
			{Severity: domain.SeverityCritical, AffectedAssets: []string{"asset-1"}, LastSeen: day(10)},
			{Severity: domain.SeverityLow, AffectedAssets: []string{"asset-3"}, LastSeen: day(12)},
		},
		assets: []domain.Asset{{ID: "asset-1"}, {ID: "asset-2"}},
		scans:  []domain.Scan{{Status: "completed"}, {Status: "running"}, {Status: "completed"}},
	}
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	reporter := NewReporterWithClock(upstream, func() time.Time { return now })

	out, err := reporter.Generate(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, now, out.GeneratedAt)
	assert.Equal(t, 3, out.TotalVulnerabilities)
	assert.Equal(t, 2, out.TotalAssets)
	assert.Equal(t, 3, out.TotalScans)

	assert.Equal(t, map[string]int{"critical": 2, "low": 1}, out.SeverityDistribution)
	assert.Equal(t, map[string]int{"completed": 2, "running": 1}, out.ScanStatusBreakdown)

	require.Len(t, out.TopAssets, 3)
	assert.Equal(t, domain.AssetExposure{AssetID: "asset-1", Count: 2}, out.TopAssets[0])

	require.Len(t, out.DailyTrend, 2)
	assert.Equal(t, domain.TrendPoint{Date: "2026-03-10", Count: 2}, out.DailyTrend[0])
	assert.Equal(t, domain.TrendPoint{Date: "2026-03-12", Count: 1}, out.DailyTrend[1])
}

func TestReporter_TopAssetsCappedAndDeterministic(t *testing.T) {
	vulns := make([]domain.Vulnerability, 0, 8)
	for _, id := range []string{"h", "g", "f", "e", "d", "c", "b", "a"} {
		vulns = append(vulns, domain.Vulnerability{
			Severity:       domain.SeverityHigh,
			AffectedAssets: []string{"asset-" + id},
		})
	}
	reporter := NewReporter(&stubUpstream{vulns: vulns})

	out, err := reporter.Generate(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, out.TopAssets, topAssetLimit)
	// Equal counts fall back to id order.
	assert.Equal(t, "asset-a", out.TopAssets[0].AssetID)
	assert.Equal(t, "asset-e", out.TopAssets[4].AssetID)
}

func TestReporter_UpstreamErrorPropagates(t *testing.T) {
	reporter := NewReporter(&stubUpstream{err: errors.New("boom")})

	_, err := reporter.Generate(context.Background(), nil)
	assert.Error(t, err)
}

func TestReporter_EmptyDataStillShapesCharts(t *testing.T) {
	reporter := NewReporter(&stubUpstream{})

	out, err := reporter.Generate(context.Background(), nil)
	require.NoError(t, err)

	assert.NotNil(t, out.SeverityDistribution)
	assert.NotNil(t, out.TopAssets)
	assert.NotNil(t, out.DailyTrend)
	assert.Empty(t, out.TopAssets)
}
