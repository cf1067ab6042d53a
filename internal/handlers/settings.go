package handlers

import (
	"encoding/json"
	"net/http"

	"ftp-m3u/internal/logging"
)

// GetSettings returns all stored settings as a key/value object.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.db.GetSettings(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch settings")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, settings)
}

// SaveSettings stores the posted key/value pairs. String values are stored
// as-is; any other JSON value is stored as its JSON text.
func (h *Handlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	values := make(map[string]string, len(raw))
	for key, msg := range raw {
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			values[key] = s
			continue
		}
		values[key] = string(msg)
	}

	if err := h.db.SetSettings(r.Context(), values); err != nil {
		writeError(w, err, "Failed to save settings")
		return
	}
	writeJSONSuccess(w)
}

// ClearCache drops cached search results.
func (h *Handlers) ClearCache(w http.ResponseWriter, _ *http.Request) {
	cleared := h.search.CachedSearches()
	h.search.ClearCache()
	logging.Debug("Cleared %d cached searches", cleared)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{"success": true, "cleared": cleared})
}
