package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulniq/vulniq/internal/core/domain"
)

func TestWriteVulnerabilitiesCSV_RowCount(t *testing.T) {
	vulns := []domain.Vulnerability{
		{PluginID: 1, PluginName: "first", Severity: domain.SeverityHigh},
		{PluginID: 2, PluginName: "second", Severity: domain.SeverityLow},
		{PluginID: 3, PluginName: "third", Severity: domain.SeverityInfo},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVulnerabilitiesCSV(&buf, vulns))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, len(vulns)+1, "header plus one row per entity")
	assert.True(t, strings.HasPrefix(lines[0], "PluginID,"))
}

func TestWriteVulnerabilitiesCSV_QuotingAndListJoining(t *testing.T) {
	vulns := []domain.Vulnerability{
		{
			PluginID:       7,
			PluginName:     `Apache Log4j "Log4Shell", RCE`,
			Severity:       domain.SeverityCritical,
			CVSSScore:      10,
			CVEs:           []string{"CVE-2021-44228", "CVE-2021-45046"},
			AffectedAssets: []string{"asset-1", "asset-2", "asset-3"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVulnerabilitiesCSV(&buf, vulns))
	out := buf.String()

	// A field with commas and quotes is quoted, internal quotes doubled.
	assert.Contains(t, out, `"Apache Log4j ""Log4Shell"", RCE"`)
	assert.Contains(t, out, "CVE-2021-44228;CVE-2021-45046")
	assert.Contains(t, out, "asset-1;asset-2;asset-3")

	// The quoted output must round-trip through a CSV reader.
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `Apache Log4j "Log4Shell", RCE`, records[1][1])
}

func TestWriteAssetsCSV(t *testing.T) {
	assets := []domain.Asset{
		{
			ID:              "asset-1",
			Hostname:        "web-01",
			IPv4:            []string{"192.0.2.10", "192.0.2.11"},
			OperatingSystem: []string{"Ubuntu 22.04"},
			LastSeen:        time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssetsCSV(&buf, assets))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "192.0.2.10;192.0.2.11", records[1][2])
	assert.Equal(t, "2026-03-14T09:00:00Z", records[1][6])
}

func TestWriteScansCSV_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScansCSV(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1, "empty list still writes the header row")
}

func TestWriteEnvelopeCSV_SelectsLayout(t *testing.T) {
	env := &domain.Envelope{
		Action: domain.ActionExportScans,
		Scans:  []domain.Scan{{ID: 5, Name: "weekly", Status: "completed"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEnvelopeCSV(&buf, env))
	assert.Contains(t, buf.String(), "weekly")

	err := WriteEnvelopeCSV(&buf, &domain.Envelope{Action: domain.ActionStartScan})
	assert.Error(t, err, "start scan has no tabular layout")
}

func TestZeroTimesRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScansCSV(&buf, []domain.Scan{{ID: 1, Name: "n"}}))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records[1][6])
	assert.Empty(t, records[1][7])
}
