package handlers

import (
	"net/http"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/logging"
)

// ListServers returns all saved FTP servers.
func (h *Handlers) ListServers(w http.ResponseWriter, r *http.Request) {
	servers, err := h.db.ListServers(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch servers")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, servers)
}

// GetServer returns one saved server.
func (h *Handlers) GetServer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, "Invalid server id")
		return
	}
	server, err := h.db.GetServer(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to fetch server")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, server)
}

// CreateServer saves a new server.
func (h *Handlers) CreateServer(w http.ResponseWriter, r *http.Request) {
	var req database.FTPServer
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	server, err := h.db.CreateServer(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create server")
		return
	}
	logging.Info("Saved FTP server %q (%s:%d)", server.Name, server.Host, server.Port)
	writeJSONStatusCode(w, http.StatusCreated, server)
}

// UpdateServer replaces a saved server.
func (h *Handlers) UpdateServer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, "Invalid server id")
		return
	}

	var req database.FTPServer
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	server, err := h.db.UpdateServer(r.Context(), id, req)
	if err != nil {
		writeError(w, err, "Failed to update server")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, server)
}

// DeleteServer removes a saved server. Playlists created from it are kept.
func (h *Handlers) DeleteServer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, "Invalid server id")
		return
	}
	if err := h.db.DeleteServer(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete server")
		return
	}
	writeJSONSuccess(w)
}
