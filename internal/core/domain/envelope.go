package domain

// FilterAll is the sentinel echoed for a filter the caller did not set.
const FilterAll = "all"

// Envelope is the uniform wrapper around one upstream response: the decoded
// entities, the action that produced them and the filters actually applied.
// Exactly one of the entity fields is populated, selected by Action.
type Envelope struct {
	Action  Action            `json:"action"`
	Filters map[string]string `json:"filters"`

	Vulnerabilities []Vulnerability `json:"-"`
	Assets          []Asset         `json:"-"`
	Scans           []Scan          `json:"-"`
	Scan            *Scan           `json:"-"`

	// Err carries an upstream failure surfaced inside the payload
	// instead of as a transport-level error.
	Err string `json:"-"`
}

// Payload renders the raw-response object returned to the caller, with the
// entity list under its conventional key. The slice is always non-nil so the
// JSON rendering is an empty array rather than null.
func (e *Envelope) Payload() map[string]any {
	if e.Err != "" {
		return map[string]any{"error": e.Err}
	}
	switch e.Action {
	case ActionListVulnerabilities, ActionExportVulnerabilities:
		vulns := e.Vulnerabilities
		if vulns == nil {
			vulns = []Vulnerability{}
		}
		return map[string]any{"vulnerabilities": vulns}
	case ActionListAssets, ActionExportAssets:
		assets := e.Assets
		if assets == nil {
			assets = []Asset{}
		}
		return map[string]any{"assets": assets}
	case ActionListScans, ActionExportScans:
		scans := e.Scans
		if scans == nil {
			scans = []Scan{}
		}
		return map[string]any{"scans": scans}
	case ActionStartScan:
		if e.Scan == nil {
			return map[string]any{"scan": map[string]any{}}
		}
		return map[string]any{"scan": e.Scan}
	}
	return map[string]any{"error": "unrecognized action"}
}
