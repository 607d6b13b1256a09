package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulniq/vulniq/internal/core/domain"
)

var testNow = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func testClassifier() *Classifier {
	return NewWithClock(func() time.Time { return testNow })
}

func TestClassify_ActionResolution(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name   string
		prompt string
		want   domain.Action
	}{
		{"vulnerability listing", "show me all vulnerabilities", domain.ActionListVulnerabilities},
		{"vuln shorthand", "any new vulns?", domain.ActionListVulnerabilities},
		{"asset listing", "list all assets", domain.ActionListAssets},
		{"host synonym", "which hosts do we track", domain.ActionListAssets},
		{"scan listing", "show recent scans", domain.ActionListScans},
		{"scan beats asset", "scans for the web servers", domain.ActionListScans},
		{"asset beats vulnerability", "hosts with vulnerabilities", domain.ActionListAssets},
		{"export vulnerabilities", "export the vulnerability list", domain.ActionExportVulnerabilities},
		{"csv keyword", "give me the assets as csv", domain.ActionExportAssets},
		{"scan and export keywords", "export scan results", domain.ActionExportScans},
		{"scan report", "export scan report", domain.ActionExportScans},
		{"start scan", "start a scan of the dmz", domain.ActionStartScan},
		{"launch scan", "launch scan 42", domain.ActionStartScan},
		{"run scan", "please run the weekly scan", domain.ActionStartScan},
		{"running is not run", "show running scans", domain.ActionListScans},
		{"empty prompt defaults", "", domain.ActionListVulnerabilities},
		{"gibberish defaults", "what is the weather like", domain.ActionListVulnerabilities},
		{"bare export defaults to vulnerabilities", "export everything", domain.ActionExportVulnerabilities},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := c.Classify(tt.prompt, nil)
			assert.Equal(t, tt.want, intent.Action)
		})
	}
}

func TestClassify_ActionContextFallback(t *testing.T) {
	c := testClassifier()

	convCtx := &domain.ConversationContext{
		CurrentContext: map[string]any{"lastAction": "list_assets"},
	}

	intent := c.Classify("and from the last 3 days?", convCtx)
	assert.Equal(t, domain.ActionListAssets, intent.Action)

	// A bogus stored action falls through to the default.
	convCtx.CurrentContext["lastAction"] = "make_coffee"
	intent = c.Classify("and from the last 3 days?", convCtx)
	assert.Equal(t, domain.ActionListVulnerabilities, intent.Action)
}

func TestClassify_Severity(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		prompt string
		want   domain.Severity
	}{
		{"show critical vulnerabilities", domain.SeverityCritical},
		{"any severe findings", domain.SeverityCritical},
		{"high severity issues", domain.SeverityHigh},
		{"moderate exposures", domain.SeverityMedium},
		{"just the minor stuff", domain.SeverityLow},
		{"informational findings", domain.SeverityInfo},
		{"all vulnerabilities", ""},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.prompt, nil).Severity)
		})
	}
}

func TestClassify_SeverityContextFallback(t *testing.T) {
	c := testClassifier()

	convCtx := &domain.ConversationContext{
		CurrentContext: map[string]any{
			"filters": map[string]any{"severity": "high"},
		},
	}

	assert.Equal(t, domain.SeverityHigh, c.Classify("show vulnerabilities", convCtx).Severity)

	// The "all" sentinel from a previous echo counts as unset.
	convCtx.CurrentContext["filters"] = map[string]any{"severity": "all"}
	assert.Equal(t, domain.Severity(""), c.Classify("show vulnerabilities", convCtx).Severity)
}

func TestClassify_RelativeTimeRange(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		prompt    string
		wantStart time.Time
	}{
		{"vulnerabilities from the last 7 days", testNow.AddDate(0, 0, -7)},
		{"assets seen in the past 2 weeks", testNow.AddDate(0, 0, -14)},
		{"scans from the last 1 month", testNow.AddDate(0, -1, 0)},
		{"findings from the previous 3 years", testNow.AddDate(-3, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			tr := c.Classify(tt.prompt, nil).TimeRange
			require.NotNil(t, tr)
			assert.Equal(t, tt.wantStart, tr.Start)
			assert.Equal(t, testNow, tr.End)
		})
	}
}

func TestClassify_NamedTimeRanges(t *testing.T) {
	c := testClassifier()
	midnight := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		prompt    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"vulnerabilities found today", midnight, testNow},
		{"what came in yesterday", midnight.AddDate(0, 0, -1), midnight},
		// 2026-03-14 is a Saturday; the week starts Monday 2026-03-09.
		{"scans from this week", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), testNow},
		{"assets added this month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), testNow},
		{"findings this year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), testNow},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			tr := c.Classify(tt.prompt, nil).TimeRange
			require.NotNil(t, tr)
			assert.Equal(t, tt.wantStart, tr.Start)
			assert.Equal(t, tt.wantEnd, tr.End)
		})
	}
}

// The dispatcher echoes a time filter as "start to end"; feeding that string
// back through the context fallback must reproduce the same range.
func TestClassify_TimeRangeEchoRoundTrip(t *testing.T) {
	c := testClassifier()

	first := c.Classify("vulnerabilities from the last 7 days", nil).TimeRange
	require.NotNil(t, first)

	convCtx := &domain.ConversationContext{
		CurrentContext: map[string]any{
			"filters": map[string]any{"timeRange": first.String()},
		},
	}
	second := c.Classify("show me the critical ones", convCtx).TimeRange
	require.NotNil(t, second)

	assert.True(t, first.Start.Equal(second.Start))
	assert.True(t, first.End.Equal(second.End))
}

func TestClassify_MalformedTimeFallbackIgnored(t *testing.T) {
	c := testClassifier()

	convCtx := &domain.ConversationContext{
		CurrentContext: map[string]any{
			"filters": map[string]any{"timeRange": "whenever to whenever"},
		},
	}

	assert.Nil(t, c.Classify("show vulnerabilities", convCtx).TimeRange)
}

func TestClassify_Identifiers(t *testing.T) {
	c := testClassifier()

	t.Run("cve id extracted verbatim", func(t *testing.T) {
		intent := c.Classify("is CVE-2021-44228 present anywhere", nil)
		assert.Equal(t, "CVE-2021-44228", intent.CVEID)
	})

	t.Run("short cve id", func(t *testing.T) {
		intent := c.Classify("details on cve-2019-0708", nil)
		assert.Equal(t, "CVE-2019-0708", intent.CVEID)
	})

	t.Run("too-short cve number ignored", func(t *testing.T) {
		intent := c.Classify("what about cve-2019-07", nil)
		assert.Empty(t, intent.CVEID)
	})

	t.Run("asset id", func(t *testing.T) {
		intent := c.Classify("vulnerabilities on asset-1337", nil)
		assert.Equal(t, "asset-1337", intent.AssetID)
	})

	t.Run("scan id", func(t *testing.T) {
		intent := c.Classify("start scan 42", nil)
		assert.Equal(t, "42", intent.ScanID)
		assert.Equal(t, domain.ActionStartScan, intent.Action)
	})

	t.Run("scan status", func(t *testing.T) {
		intent := c.Classify("list running scans", nil)
		assert.Equal(t, "running", intent.ScanStatus)
	})

	t.Run("cancelled normalized", func(t *testing.T) {
		intent := c.Classify("show cancelled scans", nil)
		assert.Equal(t, "canceled", intent.ScanStatus)
	})
}

// One prompt carrying an action plus three filters at once.
func TestClassify_CombinedScenario(t *testing.T) {
	c := testClassifier()

	intent := c.Classify("show me critical vulnerabilities from the last 7 days", nil)

	assert.Equal(t, domain.ActionListVulnerabilities, intent.Action)
	assert.Equal(t, domain.SeverityCritical, intent.Severity)
	require.NotNil(t, intent.TimeRange)
	assert.Equal(t, testNow.AddDate(0, 0, -7), intent.TimeRange.Start)
	assert.Equal(t, testNow, intent.TimeRange.End)
}

func TestClassify_NeverPanicsOnNilContext(t *testing.T) {
	c := testClassifier()

	intent := c.Classify("", nil)

	assert.Equal(t, domain.ActionListVulnerabilities, intent.Action)
	assert.Empty(t, intent.Severity)
	assert.Nil(t, intent.TimeRange)
	assert.Empty(t, intent.CVEID)
}
