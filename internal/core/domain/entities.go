package domain

import "time"

// Vulnerability is a single finding from the upstream workbench listing.
type Vulnerability struct {
	PluginID       int       `json:"plugin_id"`
	PluginName     string    `json:"plugin_name"`
	Severity       Severity  `json:"severity"`
	CVSSScore      float64   `json:"cvss_score"`
	CVEs           []string  `json:"cves"`
	AffectedAssets []string  `json:"affected_assets"`
	State          string    `json:"state"`
	FirstSeen      time.Time `json:"first_seen"`
	LastSeen       time.Time `json:"last_seen"`
	Description    string    `json:"description,omitempty"`
}

// HasCVE reports whether the finding references the given CVE identifier.
func (v Vulnerability) HasCVE(id string) bool {
	for _, c := range v.CVEs {
		if c == id {
			return true
		}
	}
	return false
}

// Asset is a host tracked by the upstream inventory.
type Asset struct {
	ID              string    `json:"id"`
	Hostname        string    `json:"hostname"`
	IPv4            []string  `json:"ipv4"`
	OperatingSystem []string  `json:"operating_system"`
	Tags            []string  `json:"tags"`
	FirstSeen       time.Time `json:"first_seen"`
	LastSeen        time.Time `json:"last_seen"`
}

// Scan is an upstream scan job and its lifecycle state.
type Scan struct {
	ID        int       `json:"id"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Targets   string    `json:"targets"`
	Owner     string    `json:"owner"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
