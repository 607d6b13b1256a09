package classify

import (
	"regexp"
	"strings"
	"time"

	"github.com/vulniq/vulniq/internal/core/domain"
)

// Action keyword groups. Declaration order is load-bearing: several patterns
// overlap ("scan report" is both an export and a scan phrase), so category
// priority is fixed as scan > asset > vulnerability, start-scan checked first,
// and an export keyword upgrades a list action inside its category.
var (
	startScanRe = regexp.MustCompile(`\b(?:start|launch|run|kick\s*off|initiate|trigger)\b.*\bscan`)
	exportRe    = regexp.MustCompile(`\b(?:export|download|csv|save|extract|report)\b`)
	scanRe      = regexp.MustCompile(`\bscan(?:s|ning)?\b`)
	assetRe     = regexp.MustCompile(`\b(?:assets?|hosts?|devices?|servers?|machines?|endpoints?|inventory)\b`)
	vulnRe      = regexp.MustCompile(`\b(?:vulnerabilit(?:y|ies)|vulns?|cves?|findings?|weakness(?:es)?|exposures?|security\s+issues?)\b`)
)

// severityRules is evaluated in order; the first matching group wins.
var severityRules = []struct {
	severity domain.Severity
	re       *regexp.Regexp
}{
	{domain.SeverityCritical, regexp.MustCompile(`\b(?:critical|severe|urgent)\b`)},
	{domain.SeverityHigh, regexp.MustCompile(`\b(?:high|important|serious)\b`)},
	{domain.SeverityMedium, regexp.MustCompile(`\b(?:medium|moderate)\b`)},
	{domain.SeverityLow, regexp.MustCompile(`\b(?:low|minor)\b`)},
	{domain.SeverityInfo, regexp.MustCompile(`\b(?:info|informational)\b`)},
}

// Time range phrases.
var (
	relativeRangeRe = regexp.MustCompile(`\b(?:last|past|previous)\s+(\d+)\s+(day|week|month|year)s?\b`)
	namedRangeRe    = regexp.MustCompile(`\b(?:today|yesterday|this\s+(?:week|month|year))\b`)
)

// Identifier extraction. Formats are fixed by the upstream API.
var (
	cveIDRe    = regexp.MustCompile(`\bcve-\d{4}-\d{4,7}\b`)
	assetIDRe  = regexp.MustCompile(`\basset-\d+\b`)
	scanIDRe   = regexp.MustCompile(`\bscan[-\s#]*(\d+)\b`)
	scanStatRe = regexp.MustCompile(`\b(running|pending|paused|completed|cancell?ed|aborted|stopped)\b`)
)

// Classifier converts a free-text prompt into a structured intent.
// It is a pure rule cascade over the lowercased prompt: no fuzzy matching,
// no scoring, and it never fails. The clock is injectable so relative time
// phrases are testable.
type Classifier struct {
	now func() time.Time
}

// New creates a classifier using the wall clock.
func New() *Classifier {
	return &Classifier{now: time.Now}
}

// NewWithClock creates a classifier with a fixed clock for tests.
func NewWithClock(now func() time.Time) *Classifier {
	return &Classifier{now: now}
}

// Classify resolves the prompt (plus optional prior-turn context) into an
// intent. Absent matches leave filters empty; the action always resolves,
// falling back to the context's last action and finally to listing
// vulnerabilities.
func (c *Classifier) Classify(prompt string, convCtx *domain.ConversationContext) domain.Intent {
	p := strings.ToLower(prompt)

	intent := domain.Intent{
		Action:    c.resolveAction(p, convCtx),
		Severity:  resolveSeverity(p, convCtx),
		TimeRange: c.resolveTimeRange(p, convCtx),
		CVEID:     strings.ToUpper(cveIDRe.FindString(p)),
		AssetID:   assetIDRe.FindString(p),
	}

	if m := scanIDRe.FindStringSubmatch(p); m != nil {
		intent.ScanID = m[1]
	}
	if intent.Action == domain.ActionListScans || intent.Action == domain.ActionExportScans {
		if m := scanStatRe.FindStringSubmatch(p); m != nil {
			intent.ScanStatus = normalizeStatus(m[1])
		}
	}
	return intent
}

func (c *Classifier) resolveAction(p string, convCtx *domain.ConversationContext) domain.Action {
	exporting := exportRe.MatchString(p)

	switch {
	case startScanRe.MatchString(p):
		return domain.ActionStartScan
	case scanRe.MatchString(p):
		if exporting {
			return domain.ActionExportScans
		}
		return domain.ActionListScans
	case assetRe.MatchString(p):
		if exporting {
			return domain.ActionExportAssets
		}
		return domain.ActionListAssets
	case vulnRe.MatchString(p):
		if exporting {
			return domain.ActionExportVulnerabilities
		}
		return domain.ActionListVulnerabilities
	}

	if action, ok := domain.ParseAction(convCtx.LastAction()); ok {
		return action
	}
	if exporting {
		return domain.ActionExportVulnerabilities
	}
	return domain.ActionListVulnerabilities
}

func resolveSeverity(p string, convCtx *domain.ConversationContext) domain.Severity {
	for _, rule := range severityRules {
		if rule.re.MatchString(p) {
			return rule.severity
		}
	}
	// Fall back to the severity echoed on a previous turn.
	switch domain.Severity(convCtx.FilterString("severity")) {
	case domain.SeverityCritical:
		return domain.SeverityCritical
	case domain.SeverityHigh:
		return domain.SeverityHigh
	case domain.SeverityMedium:
		return domain.SeverityMedium
	case domain.SeverityLow:
		return domain.SeverityLow
	case domain.SeverityInfo:
		return domain.SeverityInfo
	}
	return ""
}

func (c *Classifier) resolveTimeRange(p string, convCtx *domain.ConversationContext) *domain.TimeRange {
	now := c.now()

	if m := relativeRangeRe.FindStringSubmatch(p); m != nil {
		// The count is bounded by the regex to pure digits; a value too
		// large for an int is an unparseable phrase and stays unset.
		n := 0
		for _, r := range m[1] {
			n = n*10 + int(r-'0')
			if n > 100000 {
				return fallbackTimeRange(convCtx)
			}
		}
		var start time.Time
		switch m[2] {
		case "day":
			start = now.AddDate(0, 0, -n)
		case "week":
			start = now.AddDate(0, 0, -7*n)
		case "month":
			start = now.AddDate(0, -n, 0)
		case "year":
			start = now.AddDate(-n, 0, 0)
		}
		return &domain.TimeRange{Start: start, End: now}
	}

	if m := namedRangeRe.FindString(p); m != "" {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		switch {
		case m == "today":
			return &domain.TimeRange{Start: midnight, End: now}
		case m == "yesterday":
			return &domain.TimeRange{Start: midnight.AddDate(0, 0, -1), End: midnight}
		case strings.HasSuffix(m, "week"):
			// Week starts on Monday.
			offset := (int(now.Weekday()) + 6) % 7
			return &domain.TimeRange{Start: midnight.AddDate(0, 0, -offset), End: now}
		case strings.HasSuffix(m, "month"):
			return &domain.TimeRange{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), End: now}
		case strings.HasSuffix(m, "year"):
			return &domain.TimeRange{Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), End: now}
		}
	}

	return fallbackTimeRange(convCtx)
}

func fallbackTimeRange(convCtx *domain.ConversationContext) *domain.TimeRange {
	echo := convCtx.FilterString("timeRange")
	if echo == "" {
		return nil
	}
	tr, ok := domain.ParseTimeRangeEcho(echo)
	if !ok {
		// Malformed filter input degrades to no filter.
		return nil
	}
	return tr
}

func normalizeStatus(s string) string {
	if s == "cancelled" {
		return "canceled"
	}
	if s == "stopped" {
		return "canceled"
	}
	return s
}
