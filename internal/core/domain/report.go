package domain

import "time"

// AssetExposure is one bar of the "most exposed assets" chart.
type AssetExposure struct {
	AssetID string `json:"assetId"`
	Count   int    `json:"count"`
}

// TrendPoint is one bucket of the findings-per-day trend line.
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// VisualizationReport is the chart-shaped aggregation served by the
// visualization endpoints. All maps and slices are non-nil so the JSON
// rendering never emits null.
type VisualizationReport struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	TimeRange   *TimeRange `json:"timeRange,omitempty"`

	TotalVulnerabilities int `json:"totalVulnerabilities"`
	TotalAssets          int `json:"totalAssets"`
	TotalScans           int `json:"totalScans"`

	SeverityDistribution map[string]int  `json:"severityDistribution"`
	ScanStatusBreakdown  map[string]int  `json:"scanStatusBreakdown"`
	TopAssets            []AssetExposure `json:"topAssets"`
	DailyTrend           []TrendPoint    `json:"dailyTrend"`
}
