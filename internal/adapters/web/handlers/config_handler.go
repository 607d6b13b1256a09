package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/ports"
)

// ConfigHandler exposes the upstream connection settings. Secrets are never
// echoed back; the GET view reports only whether they are set.
type ConfigHandler struct {
	Store ports.SettingsStore
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(store ports.SettingsStore) *ConfigHandler {
	return &ConfigHandler{Store: store}
}

// HandleGetConfig returns the redacted settings view.
func (h *ConfigHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Snapshot().Redacted())
}

// HandleUpdateConfig applies a partial settings update. Absent fields keep
// their current values.
func (h *ConfigHandler) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	updated := h.Store.Update(patch)
	writeJSON(w, http.StatusOK, updated.Redacted())
}
