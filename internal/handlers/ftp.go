package handlers

import (
	"context"
	"net/http"

	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/search"
)

// SearchRequest is a search.Request that may instead name a saved server.
type SearchRequest struct {
	search.Request
	// ServerID fills host, port and username from a saved server. A
	// password in the request overrides the saved one.
	ServerID *int64 `json:"serverId,omitempty"`
}

func (h *Handlers) resolveServer(ctx context.Context, req SearchRequest) (search.Request, error) {
	if req.ServerID == nil {
		return req.Request, nil
	}
	server, err := h.db.GetServer(ctx, *req.ServerID)
	if err != nil {
		return search.Request{}, err
	}
	out := req.Request
	out.Host = server.Host
	out.Port = server.Port
	out.Username = server.Username
	if out.Password == "" {
		out.Password = server.Password
	}
	return out, nil
}

// Connect checks that an FTP server accepts the given credentials.
func (h *Handlers) Connect(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	resolved, err := h.resolveServer(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to load server")
		return
	}

	if err := h.search.TestConnection(r.Context(), resolved.ConnectionInfo()); err != nil {
		writeError(w, err, "Failed to connect to FTP server")
		return
	}
	writeJSONSuccess(w)
}

// Search explores the FTP server and returns matching media files.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	resolved, err := h.resolveServer(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to load server")
		return
	}

	results, err := h.search.Search(r.Context(), resolved)
	if err != nil {
		writeError(w, err, "Failed to search FTP server")
		return
	}
	if results == nil {
		results = []mediatypes.MediaEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, results)
}
