package ports

import (
	"context"

	"github.com/vulniq/vulniq/internal/core/domain"
)

// UpstreamClient is the outbound interface to the vulnerability-management
// API. Every method maps to exactly one upstream endpoint; filters that the
// upstream does not accept server-side are applied on the decoded result.
type UpstreamClient interface {
	// ListVulnerabilities returns workbench findings, optionally narrowed by
	// severity, last-seen time range and CVE identifier.
	ListVulnerabilities(ctx context.Context, severity domain.Severity, tr *domain.TimeRange, cveID string) ([]domain.Vulnerability, error)

	// ListAssets returns inventory hosts, optionally narrowed by last-seen
	// time range and asset identifier.
	ListAssets(ctx context.Context, tr *domain.TimeRange, assetID string) ([]domain.Asset, error)

	// ListScans returns scan jobs, optionally narrowed by start-time range
	// and lifecycle status.
	ListScans(ctx context.Context, tr *domain.TimeRange, status string) ([]domain.Scan, error)

	// LaunchScan launches an existing scan by identifier.
	LaunchScan(ctx context.Context, scanID string) (*domain.Scan, error)

	// CreateAndLaunchScan creates a scan with the given name and target list
	// and launches it immediately.
	CreateAndLaunchScan(ctx context.Context, name, targets string) (*domain.Scan, error)
}

// SettingsStore publishes immutable settings snapshots.
type SettingsStore interface {
	// Snapshot returns the current settings. The returned value never
	// changes; concurrent updates publish a new snapshot instead.
	Snapshot() domain.Settings

	// Update merges the patch into the current snapshot and publishes the
	// result, returning the new snapshot.
	Update(patch domain.SettingsPatch) domain.Settings
}
