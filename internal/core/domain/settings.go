package domain

import "time"

// Settings is an immutable snapshot of the upstream connection parameters.
// The settings store publishes whole snapshots atomically, so a request never
// observes a half-updated key pair.
type Settings struct {
	AccessKey  string
	SecretKey  string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// SettingsPatch is a partial update; nil fields leave the current value alone.
type SettingsPatch struct {
	AccessKey     *string `json:"accessKey,omitempty"`
	SecretKey     *string `json:"secretKey,omitempty"`
	BaseURL       *string `json:"baseUrl,omitempty"`
	TimeoutMillis *int    `json:"timeoutMillis,omitempty"`
	MaxRetries    *int    `json:"maxRetries,omitempty"`
}

// Merge returns a copy of s with the non-nil patch fields applied.
func (s Settings) Merge(p SettingsPatch) Settings {
	out := s
	if p.AccessKey != nil {
		out.AccessKey = *p.AccessKey
	}
	if p.SecretKey != nil {
		out.SecretKey = *p.SecretKey
	}
	if p.BaseURL != nil {
		out.BaseURL = *p.BaseURL
	}
	if p.TimeoutMillis != nil {
		out.Timeout = time.Duration(*p.TimeoutMillis) * time.Millisecond
	}
	if p.MaxRetries != nil {
		out.MaxRetries = *p.MaxRetries
	}
	return out
}

// Redacted returns the externally visible view of the settings: secrets are
// reported only as set/unset flags.
func (s Settings) Redacted() map[string]any {
	return map[string]any{
		"baseUrl":       s.BaseURL,
		"timeoutMillis": int(s.Timeout / time.Millisecond),
		"maxRetries":    s.MaxRetries,
		"accessKeySet":  s.AccessKey != "",
		"secretKeySet":  s.SecretKey != "",
	}
}
