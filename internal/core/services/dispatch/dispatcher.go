package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/ports"
	"github.com/vulniq/vulniq/internal/telemetry"
)

// Defaults for a start-scan request that names no existing scan.
const (
	defaultScanNamePrefix = "vulniq-adhoc"
	defaultScanTargets    = "default"
)

// Dispatcher maps an intent to exactly one upstream call and wraps the result
// in a uniform envelope. Upstream failures propagate; the HTTP layer decides
// how to surface them.
type Dispatcher struct {
	client ports.UpstreamClient
}

// New creates a dispatcher backed by the given upstream client.
func New(client ports.UpstreamClient) *Dispatcher {
	return &Dispatcher{client: client}
}

// Dispatch executes the intent and returns the response envelope. The echoed
// filters cover only the filters the executed call actually used, with the
// "all" sentinel standing in for unset values.
func (d *Dispatcher) Dispatch(ctx context.Context, intent domain.Intent) (*domain.Envelope, error) {
	telemetry.PromptsClassified.WithLabelValues(string(intent.Action)).Inc()

	switch intent.Action {
	case domain.ActionListVulnerabilities, domain.ActionExportVulnerabilities:
		vulns, err := d.client.ListVulnerabilities(ctx, intent.Severity, intent.TimeRange, intent.CVEID)
		if err != nil {
			return nil, err
		}
		return &domain.Envelope{
			Action:          intent.Action,
			Filters:         vulnerabilityFilters(intent),
			Vulnerabilities: vulns,
		}, nil

	case domain.ActionListAssets, domain.ActionExportAssets:
		assets, err := d.client.ListAssets(ctx, intent.TimeRange, intent.AssetID)
		if err != nil {
			return nil, err
		}
		return &domain.Envelope{
			Action:  intent.Action,
			Filters: assetFilters(intent),
			Assets:  assets,
		}, nil

	case domain.ActionListScans, domain.ActionExportScans:
		scans, err := d.client.ListScans(ctx, intent.TimeRange, intent.ScanStatus)
		if err != nil {
			return nil, err
		}
		return &domain.Envelope{
			Action:  intent.Action,
			Filters: scanFilters(intent),
			Scans:   scans,
		}, nil

	case domain.ActionStartScan:
		scan, err := d.startScan(ctx, intent)
		if err != nil {
			return nil, err
		}
		return &domain.Envelope{
			Action:  intent.Action,
			Filters: map[string]string{"scanId": orAll(intent.ScanID)},
			Scan:    scan,
		}, nil
	}

	// Unreachable through the classifier, which always resolves an action.
	return &domain.Envelope{
		Action:  intent.Action,
		Filters: map[string]string{},
		Err:     fmt.Sprintf("unrecognized action %q", intent.Action),
	}, nil
}

// startScan launches the named scan, or creates and launches a throwaway
// default scan when the prompt named none.
func (d *Dispatcher) startScan(ctx context.Context, intent domain.Intent) (*domain.Scan, error) {
	if intent.ScanID != "" {
		return d.client.LaunchScan(ctx, intent.ScanID)
	}
	name := fmt.Sprintf("%s-%s", defaultScanNamePrefix, uuid.NewString()[:8])
	return d.client.CreateAndLaunchScan(ctx, name, defaultScanTargets)
}

func vulnerabilityFilters(intent domain.Intent) map[string]string {
	return map[string]string{
		"severity":  orAll(string(intent.Severity)),
		"timeRange": timeRangeEcho(intent.TimeRange),
		"cveId":     orAll(intent.CVEID),
	}
}

func assetFilters(intent domain.Intent) map[string]string {
	return map[string]string{
		"timeRange": timeRangeEcho(intent.TimeRange),
		"assetId":   orAll(intent.AssetID),
	}
}

func scanFilters(intent domain.Intent) map[string]string {
	return map[string]string{
		"timeRange": timeRangeEcho(intent.TimeRange),
		"status":    orAll(intent.ScanStatus),
	}
}

func timeRangeEcho(tr *domain.TimeRange) string {
	if tr == nil {
		return domain.FilterAll
	}
	return tr.String()
}

func orAll(s string) string {
	if s == "" {
		return domain.FilterAll
	}
	return s
}
