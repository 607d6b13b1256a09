package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vulniq/vulniq/internal/core/domain"
)

// List-valued fields (CVEs, affected assets, addresses) are joined with a
// semicolon inside a single CSV cell.
const listSeparator = ";"

// WriteVulnerabilitiesCSV writes one header row and one row per finding.
func WriteVulnerabilitiesCSV(w io.Writer, vulns []domain.Vulnerability) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"PluginID", "PluginName", "Severity", "CVSSScore",
		"CVEs", "AffectedAssets", "State", "FirstSeen", "LastSeen",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, v := range vulns {
		row := []string{
			fmt.Sprintf("%d", v.PluginID),
			v.PluginName,
			string(v.Severity),
			fmt.Sprintf("%.1f", v.CVSSScore),
			strings.Join(v.CVEs, listSeparator),
			strings.Join(v.AffectedAssets, listSeparator),
			v.State,
			formatTime(v.FirstSeen),
			formatTime(v.LastSeen),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// WriteAssetsCSV writes one header row and one row per asset.
func WriteAssetsCSV(w io.Writer, assets []domain.Asset) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"ID", "Hostname", "IPv4", "OperatingSystem", "Tags", "FirstSeen", "LastSeen",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, a := range assets {
		row := []string{
			a.ID,
			a.Hostname,
			strings.Join(a.IPv4, listSeparator),
			strings.Join(a.OperatingSystem, listSeparator),
			strings.Join(a.Tags, listSeparator),
			formatTime(a.FirstSeen),
			formatTime(a.LastSeen),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// WriteScansCSV writes one header row and one row per scan.
func WriteScansCSV(w io.Writer, scans []domain.Scan) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"ID", "UUID", "Name", "Status", "Targets", "Owner", "StartTime", "EndTime",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, s := range scans {
		row := []string{
			fmt.Sprintf("%d", s.ID),
			s.UUID,
			s.Name,
			s.Status,
			s.Targets,
			s.Owner,
			formatTime(s.StartTime),
			formatTime(s.EndTime),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// WriteEnvelopeCSV picks the writer matching the envelope's entity kind.
func WriteEnvelopeCSV(w io.Writer, env *domain.Envelope) error {
	switch env.Action {
	case domain.ActionListVulnerabilities, domain.ActionExportVulnerabilities:
		return WriteVulnerabilitiesCSV(w, env.Vulnerabilities)
	case domain.ActionListAssets, domain.ActionExportAssets:
		return WriteAssetsCSV(w, env.Assets)
	case domain.ActionListScans, domain.ActionExportScans:
		return WriteScansCSV(w, env.Scans)
	}
	return fmt.Errorf("no CSV layout for action %q", env.Action)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
