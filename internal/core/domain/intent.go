package domain

import (
	"fmt"
	"strings"
	"time"
)

// Action identifies the single upstream operation a prompt resolves to.
type Action string

const (
	ActionListVulnerabilities   Action = "list_vulnerabilities"
	ActionExportVulnerabilities Action = "export_vulnerabilities"
	ActionListAssets            Action = "list_assets"
	ActionExportAssets          Action = "export_assets"
	ActionListScans             Action = "list_scans"
	ActionExportScans           Action = "export_scans"
	ActionStartScan             Action = "start_scan"
)

// ParseAction maps a stored action string back to an Action.
// Unknown strings return false so callers can fall through to the default.
func ParseAction(s string) (Action, bool) {
	switch Action(strings.TrimSpace(strings.ToLower(s))) {
	case ActionListVulnerabilities, ActionExportVulnerabilities,
		ActionListAssets, ActionExportAssets,
		ActionListScans, ActionExportScans,
		ActionStartScan:
		return Action(strings.TrimSpace(strings.ToLower(s))), true
	}
	return "", false
}

// IsExport reports whether the action is an export variant.
func (a Action) IsExport() bool {
	switch a {
	case ActionExportVulnerabilities, ActionExportAssets, ActionExportScans:
		return true
	}
	return false
}

// Severity is the ordinal criticality level used by the upstream API.
// The empty string means "not filtered".
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// SeverityRank returns a sort weight, highest first. Unknown severities rank last.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	}
	return 5
}

// TimeRange is a closed interval; End is inclusive.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range (boundaries included).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// String renders the range in the echoed-filter format used by the dispatcher.
func (r TimeRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// ParseTimeRangeEcho parses the "start to end" string produced by
// TimeRange.String. It is the context-fallback path for time filters.
func ParseTimeRangeEcho(s string) (*TimeRange, bool) {
	parts := strings.SplitN(s, " to ", 2)
	if len(parts) != 2 {
		return nil, false
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, false
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, false
	}
	return &TimeRange{Start: start, End: end}, true
}

// Intent is the structured interpretation of a free-text prompt.
// Action is always set; every filter is optional and independently empty.
type Intent struct {
	Action     Action     `json:"action"`
	Severity   Severity   `json:"severity,omitempty"`
	TimeRange  *TimeRange `json:"timeRange,omitempty"`
	CVEID      string     `json:"cveId,omitempty"`
	AssetID    string     `json:"assetId,omitempty"`
	ScanID     string     `json:"scanId,omitempty"`
	ScanStatus string     `json:"scanStatus,omitempty"`
}
