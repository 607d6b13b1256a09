package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vulniq/vulniq/internal/core/domain"
)

// Summarize renders a fixed-template text summary of one response envelope:
// entity counts, a breakdown by the kind's grouping key, and the filters
// that were applied.
func Summarize(intent domain.Intent, env *domain.Envelope) string {
	if env.Err != "" {
		return fmt.Sprintf("The request could not be completed: %s", env.Err)
	}

	var b strings.Builder

	switch env.Action {
	case domain.ActionListVulnerabilities, domain.ActionExportVulnerabilities:
		fmt.Fprintf(&b, "Found %d %s.\n", len(env.Vulnerabilities), plural(len(env.Vulnerabilities), "vulnerability", "vulnerabilities"))
		if len(env.Vulnerabilities) > 0 {
			b.WriteString("By severity: " + severityBreakdown(env.Vulnerabilities) + ".\n")
		}
		if env.Action == domain.ActionExportVulnerabilities {
			b.WriteString("The full listing is attached as CSV.\n")
		}

	case domain.ActionListAssets, domain.ActionExportAssets:
		fmt.Fprintf(&b, "Found %d %s.\n", len(env.Assets), plural(len(env.Assets), "asset", "assets"))
		if env.Action == domain.ActionExportAssets {
			b.WriteString("The full listing is attached as CSV.\n")
		}

	case domain.ActionListScans, domain.ActionExportScans:
		fmt.Fprintf(&b, "Found %d %s.\n", len(env.Scans), plural(len(env.Scans), "scan", "scans"))
		if len(env.Scans) > 0 {
			b.WriteString("By status: " + statusBreakdown(env.Scans) + ".\n")
		}
		if env.Action == domain.ActionExportScans {
			b.WriteString("The full listing is attached as CSV.\n")
		}

	case domain.ActionStartScan:
		if env.Scan != nil {
			name := env.Scan.Name
			if name == "" {
				name = fmt.Sprintf("scan %d", env.Scan.ID)
			}
			fmt.Fprintf(&b, "Launched %s (status: %s).\n", name, env.Scan.Status)
		} else {
			b.WriteString("Scan launch requested.\n")
		}

	default:
		fmt.Fprintf(&b, "No handler for action %q.\n", env.Action)
	}

	if filters := renderFilters(env.Filters); filters != "" {
		b.WriteString("Filters: " + filters + ".")
	}
	return strings.TrimRight(b.String(), "\n")
}

// severityBreakdown renders "critical: 2, high: 5, ..." highest first.
func severityBreakdown(vulns []domain.Vulnerability) string {
	counts := make(map[domain.Severity]int)
	for _, v := range vulns {
		counts[v.Severity]++
	}

	severities := make([]domain.Severity, 0, len(counts))
	for s := range counts {
		severities = append(severities, s)
	}
	sort.Slice(severities, func(i, j int) bool {
		return domain.SeverityRank(severities[i]) < domain.SeverityRank(severities[j])
	})

	parts := make([]string, 0, len(severities))
	for _, s := range severities {
		parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
	}
	return strings.Join(parts, ", ")
}

func statusBreakdown(scans []domain.Scan) string {
	counts := make(map[string]int)
	for _, s := range scans {
		status := s.Status
		if status == "" {
			status = "unknown"
		}
		counts[status]++
	}

	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
	}
	return strings.Join(parts, ", ")
}

// renderFilters joins the echoed filters in stable key order.
func renderFilters(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, filters[k]))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
