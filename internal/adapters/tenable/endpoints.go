package tenable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vulniq/vulniq/internal/core/domain"
)

// Wire shapes owned by the upstream contract. Entity lists live under a
// top-level key; a missing key decodes to an empty list.
type vulnerabilityListResponse struct {
	Vulnerabilities []domain.Vulnerability `json:"vulnerabilities"`
}

type assetListResponse struct {
	Assets []domain.Asset `json:"assets"`
}

type scanListResponse struct {
	Scans []domain.Scan `json:"scans"`
}

type scanCreateResponse struct {
	Scan domain.Scan `json:"scan"`
}

type scanLaunchResponse struct {
	ScanUUID string `json:"scan_uuid"`
}

// ListVulnerabilities fetches the vulnerability workbench. Severity is passed
// through as a query parameter; the time range and CVE filter are applied to
// the decoded result since the upstream listing does not accept them.
func (c *Client) ListVulnerabilities(ctx context.Context, severity domain.Severity, tr *domain.TimeRange, cveID string) ([]domain.Vulnerability, error) {
	query := url.Values{}
	query.Set("severity", string(severity))

	raw, err := c.Do(ctx, http.MethodGet, "/workbenches/vulnerabilities", query, nil)
	if err != nil {
		return nil, err
	}

	var decoded vulnerabilityListResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode vulnerability listing: %w", err)
	}

	vulns := decoded.Vulnerabilities
	if vulns == nil {
		vulns = []domain.Vulnerability{}
	}

	filtered := vulns[:0:0]
	for _, v := range vulns {
		if severity != "" && v.Severity != severity {
			continue
		}
		if tr != nil && !tr.Contains(v.LastSeen) {
			continue
		}
		if cveID != "" && !v.HasCVE(cveID) {
			continue
		}
		filtered = append(filtered, v)
	}
	if filtered == nil {
		filtered = []domain.Vulnerability{}
	}
	return filtered, nil
}

// ListAssets fetches the asset inventory, filtering by last-seen range and
// asset identifier on the decoded result.
func (c *Client) ListAssets(ctx context.Context, tr *domain.TimeRange, assetID string) ([]domain.Asset, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/assets", nil, nil)
	if err != nil {
		return nil, err
	}

	var decoded assetListResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode asset listing: %w", err)
	}

	assets := decoded.Assets
	filtered := assets[:0:0]
	for _, a := range assets {
		if tr != nil && !tr.Contains(a.LastSeen) {
			continue
		}
		if assetID != "" && a.ID != assetID {
			continue
		}
		filtered = append(filtered, a)
	}
	if filtered == nil {
		filtered = []domain.Asset{}
	}
	return filtered, nil
}

// ListScans fetches scan jobs, filtering by start-time range and status
// on the decoded result.
func (c *Client) ListScans(ctx context.Context, tr *domain.TimeRange, status string) ([]domain.Scan, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/scans", nil, nil)
	if err != nil {
		return nil, err
	}

	var decoded scanListResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode scan listing: %w", err)
	}

	scans := decoded.Scans
	filtered := scans[:0:0]
	for _, s := range scans {
		if tr != nil && !tr.Contains(s.StartTime) {
			continue
		}
		if status != "" && !strings.EqualFold(s.Status, status) {
			continue
		}
		filtered = append(filtered, s)
	}
	if filtered == nil {
		filtered = []domain.Scan{}
	}
	return filtered, nil
}

// LaunchScan launches an existing scan by identifier.
func (c *Client) LaunchScan(ctx context.Context, scanID string) (*domain.Scan, error) {
	raw, err := c.Do(ctx, http.MethodPost, "/scans/"+url.PathEscape(scanID)+"/launch", nil, nil)
	if err != nil {
		return nil, err
	}

	var decoded scanLaunchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode scan launch: %w", err)
	}

	id, _ := strconv.Atoi(scanID)
	return &domain.Scan{
		ID:     id,
		UUID:   decoded.ScanUUID,
		Status: "pending",
	}, nil
}

// CreateAndLaunchScan creates a scan with an immediate on-demand schedule and
// launches it right away.
func (c *Client) CreateAndLaunchScan(ctx context.Context, name, targets string) (*domain.Scan, error) {
	body := map[string]any{
		"settings": map[string]any{
			"name":         name,
			"text_targets": targets,
			"launch":       "ON_DEMAND",
			"enabled":      true,
		},
	}

	raw, err := c.Do(ctx, http.MethodPost, "/scans", nil, body)
	if err != nil {
		return nil, err
	}

	var created scanCreateResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("decode scan create: %w", err)
	}

	launched, err := c.LaunchScan(ctx, strconv.Itoa(created.Scan.ID))
	if err != nil {
		return nil, fmt.Errorf("launch created scan %d: %w", created.Scan.ID, err)
	}

	scan := created.Scan
	scan.UUID = launched.UUID
	scan.Status = "pending"
	return &scan, nil
}
