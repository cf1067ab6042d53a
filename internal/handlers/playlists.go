package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/playlist"
	"ftp-m3u/internal/search"
)

// PlaylistFile is a media entry posted back for generation. Selected
// defaults to true when omitted.
type PlaylistFile struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Season   *int   `json:"season"`
	Episode  *int   `json:"episode"`
	Size     string `json:"size"`
	Selected *bool  `json:"selected"`
}

// PlaylistRequest asks for a playlist to be generated. Omitted options fall
// back to no group title with season grouping and numeric sorting on.
type PlaylistRequest struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	GroupTitle        *string        `json:"groupTitle"`
	OrganizeBySeasons *bool          `json:"organizeBySeasons"`
	SortNumerically   *bool          `json:"sortNumerically"`
	ServerID          *int64         `json:"serverId"`
	Files             []PlaylistFile `json:"files"`
}

// PreviewResponse is the generated content without storing it.
type PreviewResponse struct {
	Content    string `json:"content"`
	EntryCount int    `json:"entryCount"`
}

func (req PlaylistRequest) options() mediatypes.PlaylistOptions {
	opts := mediatypes.DefaultPlaylistOptions(strings.TrimSpace(req.Name))
	if req.GroupTitle != nil {
		opts.GroupTitle = *req.GroupTitle
	}
	if req.OrganizeBySeasons != nil {
		opts.OrganizeBySeasons = *req.OrganizeBySeasons
	}
	if req.SortNumerically != nil {
		opts.SortNumerically = *req.SortNumerically
	}
	return opts
}

func (req PlaylistRequest) entries() ([]mediatypes.MediaEntry, error) {
	out := make([]mediatypes.MediaEntry, 0, len(req.Files))
	for i, f := range req.Files {
		if strings.TrimSpace(f.URL) == "" {
			return nil, fmt.Errorf("%w: file %d has no url", database.ErrInvalidInput, i)
		}
		out = append(out, mediatypes.MediaEntry{
			URL:      f.URL,
			Name:     f.Name,
			Season:   f.Season,
			Episode:  f.Episode,
			Size:     f.Size,
			Selected: f.Selected == nil || *f.Selected,
		})
	}
	if len(search.Selected(out)) == 0 {
		return nil, fmt.Errorf("%w: no files selected", database.ErrInvalidInput)
	}
	return out, nil
}

// generate validates the request and composes the playlist.
func (h *Handlers) generate(req PlaylistRequest) (PreviewResponse, error) {
	entries, err := req.entries()
	if err != nil {
		return PreviewResponse{}, err
	}

	content := h.search.GeneratePlaylist(entries, req.options())
	count := len(search.Selected(entries))
	if parsed, err := playlist.Parse(strings.NewReader(content)); err == nil {
		count = parsed.Count
	}
	return PreviewResponse{Content: content, EntryCount: count}, nil
}

// ListPlaylists returns all stored playlists, newest first.
func (h *Handlers) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.db.ListPlaylists(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch playlists")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, playlists)
}

// PreviewPlaylist returns the M3U content for the request without saving.
func (h *Handlers) PreviewPlaylist(w http.ResponseWriter, r *http.Request) {
	var req PlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	preview, err := h.generate(req)
	if err != nil {
		writeError(w, err, "Failed to generate playlist")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, preview)
}

// CreatePlaylist generates a playlist from the posted files and stores it.
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req PlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSONError(w, "playlist name is required", http.StatusBadRequest)
		return
	}

	generated, err := h.generate(req)
	if err != nil {
		writeError(w, err, "Failed to generate playlist")
		return
	}

	opts := req.options()
	stored, err := h.db.CreatePlaylist(r.Context(), database.Playlist{
		Name:        opts.Name,
		Description: req.Description,
		GroupTitle:  opts.GroupTitle,
		Content:     generated.Content,
		CreatedAt:   time.Now(),
		ServerID:    req.ServerID,
		EntryCount:  generated.EntryCount,
	})
	if err != nil {
		writeError(w, err, "Failed to save playlist")
		return
	}

	logging.Info("Created playlist %q with %d entries", stored.Name, stored.EntryCount)
	writeJSONStatusCode(w, http.StatusCreated, stored)
}

// GetPlaylist returns one stored playlist.
func (h *Handlers) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, "Invalid playlist id")
		return
	}
	pl, err := h.db.GetPlaylist(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to fetch playlist")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, pl)
}

// DeletePlaylist removes a stored playlist.
func (h *Handlers) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, "Invalid playlist id")
		return
	}
	if err := h.db.DeletePlaylist(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete playlist")
		return
	}
	writeJSONSuccess(w)
}

// DownloadPlaylist serves the stored content as an .m3u attachment.
func (h *Handlers) DownloadPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, "Invalid playlist id")
		return
	}
	pl, err := h.db.GetPlaylist(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to fetch playlist")
		return
	}

	w.Header().Set("Content-Type", mediatypes.M3UMimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(pl.Name)))
	if _, err := w.Write([]byte(pl.Content)); err != nil {
		logging.Debug("failed to write playlist %d: %v", id, err)
	}
}

// downloadName makes a playlist name safe for a Content-Disposition
// filename and appends .m3u.
func downloadName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return -1
		case strings.ContainsRune(`"\/:*?<>|`, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		cleaned = "playlist"
	}
	return cleaned + ".m3u"
}
