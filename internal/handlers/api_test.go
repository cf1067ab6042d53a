package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/ftpclient/ftptest"
	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/playlist"

	"github.com/google/go-cmp/cmp"
)

func breakingBadTree() *ftptest.Tree {
	return ftptest.NewTree().
		AddFile("/Breaking Bad/Season 1/Breaking.Bad.S01E01.720p.mkv", 1536<<20).
		AddFile("/Breaking Bad/Season 1/Breaking.Bad.S01E02.720p.mkv", 0).
		AddFile("/Breaking Bad/Season 1/notes.txt", 10).
		AddDir("/Other")
}

func TestHealthRoutes(t *testing.T) {
	env := setupTestHandlers(t, nil, true)

	tests := []struct {
		path string
		want string
	}{
		{"/healthz", statusHealthy},
		{"/livez", "alive"},
		{"/readyz", "ready"},
		{"/api/health", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			var body map[string]interface{}
			decodeBody(t, rec, &body)
			if body["status"] != tt.want {
				t.Errorf("status field = %v, want %q", body["status"], tt.want)
			}
		})
	}
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	env := setupTestHandlers(t, nil, false)
	env.db.Close()

	rec := env.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz status = %d, want 503", rec.Code)
	}
}

func TestVersion(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodGet, "/version", nil)
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["version"] == "" || body["goVersion"] == "" {
		t.Errorf("unexpected version body %v", body)
	}
}

func TestServersCRUD(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodPost, "/api/servers", map[string]interface{}{
		"name": "NAS", "host": "nas.local", "password": "secret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created database.FTPServer
	decodeBody(t, rec, &created)
	if created.Port != 21 || created.Username != "anonymous" || created.Password != "" {
		t.Errorf("defaults not applied: %+v", created)
	}

	rec = env.do(t, http.MethodGet, "/api/servers", nil)
	var list []database.FTPServer
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	rec = env.do(t, http.MethodPut, "/api/servers/1", map[string]interface{}{
		"name": "NAS 2", "host": "nas2.local", "port": 2121,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	rec = env.do(t, http.MethodGet, "/api/servers/1", nil)
	var got database.FTPServer
	decodeBody(t, rec, &got)
	if got.Name != "NAS 2" || got.Port != 2121 {
		t.Errorf("update not stored: %+v", got)
	}

	rec = env.do(t, http.MethodDelete, "/api/servers/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/servers/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreateServerValidation(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodPost, "/api/servers", map[string]string{"name": "no host"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "host") {
		t.Errorf("message = %q", msg)
	}

	rec = env.do(t, http.MethodPost, "/api/servers", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	env := setupTestHandlers(t, breakingBadTree(), false)

	rec := env.do(t, http.MethodPost, "/api/search", map[string]interface{}{
		"host": "nas", "searchTerm": "Breaking Bad",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var results []mediatypes.MediaEntry
	decodeBody(t, rec, &results)

	want := []mediatypes.MediaEntry{
		{
			URL:      "nas:21/Breaking Bad/Season 1/Breaking.Bad.S01E01.720p.mkv",
			Name:     "Breaking.Bad.S01E01.720p.mkv",
			Season:   mediatypes.IntPtr(1),
			Episode:  mediatypes.IntPtr(1),
			Size:     "1.5GB",
			Selected: true,
		},
		{
			URL:      "nas:21/Breaking Bad/Season 1/Breaking.Bad.S01E02.720p.mkv",
			Name:     "Breaking.Bad.S01E02.720p.mkv",
			Season:   mediatypes.IntPtr(1),
			Episode:  mediatypes.IntPtr(2),
			Selected: true,
		},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("search results mismatch (-want +got):\n%s", diff)
	}
	if env.dialer.Closes() != 1 {
		t.Errorf("session closes = %d, want 1", env.dialer.Closes())
	}
}

func TestSearchEmptyResultIsArray(t *testing.T) {
	env := setupTestHandlers(t, breakingBadTree(), false)

	rec := env.do(t, http.MethodPost, "/api/search", map[string]interface{}{
		"host": "nas", "searchTerm": "Nothing Here",
	})
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}

func TestSearchErrors(t *testing.T) {
	env := setupTestHandlers(t, breakingBadTree(), false)

	rec := env.do(t, http.MethodPost, "/api/search", map[string]interface{}{"host": "nas"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing term status = %d, want 400", rec.Code)
	}
	if env.dialer.Dials() != 0 {
		t.Error("validation must happen before dialing")
	}

	env.dialer.Err = errors.New("connection refused")
	rec = env.do(t, http.MethodPost, "/api/search", map[string]interface{}{
		"host": "nas", "searchTerm": "Breaking Bad",
	})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("connection failure status = %d, want 502", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "connection refused") {
		t.Errorf("message = %q", msg)
	}
}

func TestSearchWithSavedServer(t *testing.T) {
	env := setupTestHandlers(t, breakingBadTree(), false)

	rec := env.do(t, http.MethodPost, "/api/servers", map[string]interface{}{
		"name": "Seedbox", "host": "seed", "port": 2121, "username": "me",
		"password": "pw", "savePassword": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/search", map[string]interface{}{
		"serverId": 1, "searchTerm": "Breaking Bad",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	info := env.dialer.LastInfo()
	if info.Host != "seed" || info.Port != 2121 || info.Username != "me" || info.Password != "pw" {
		t.Errorf("saved server not used: %+v", info)
	}

	rec = env.do(t, http.MethodPost, "/api/search", map[string]interface{}{
		"serverId": 99, "searchTerm": "x",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown server status = %d, want 404", rec.Code)
	}
}

func TestConnect(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodPost, "/api/connect", map[string]interface{}{"host": "nas"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if env.dialer.Closes() != 1 {
		t.Error("connection test must close the session")
	}

	rec = env.do(t, http.MethodPost, "/api/connect", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing host status = %d, want 400", rec.Code)
	}

	env.dialer.Err = errors.New("530 Login incorrect")
	rec = env.do(t, http.MethodPost, "/api/connect", map[string]interface{}{"host": "nas"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func playlistBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": "first season",
		"groupTitle":  "Breaking Bad",
		"files": []map[string]interface{}{
			{"url": "nas:21/BB/Breaking.Bad.S01E02.mkv", "name": "Breaking.Bad.S01E02.mkv", "season": 1, "episode": 2},
			{"url": "nas:21/BB/Breaking.Bad.S01E01.mkv", "name": "Breaking.Bad.S01E01.mkv", "season": 1, "episode": 1},
			{"url": "nas:21/BB/extras.mkv", "name": "extras.mkv", "selected": false},
		},
	}
}

func TestPreviewPlaylist(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodPost, "/api/playlists/preview", playlistBody(""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var preview PreviewResponse
	decodeBody(t, rec, &preview)

	want := "#EXTM3U\n" +
		"#EXTINF:-1 group-title=\"Breaking Bad S01\",Breaking Bad - S01E01\n" +
		"nas:21/BB/Breaking.Bad.S01E01.mkv\n" +
		"#EXTINF:-1 group-title=\"Breaking Bad S01\",Breaking Bad - S01E02\n" +
		"nas:21/BB/Breaking.Bad.S01E02.mkv\n"
	if diff := cmp.Diff(want, preview.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if preview.EntryCount != 2 {
		t.Errorf("EntryCount = %d, want 2", preview.EntryCount)
	}

	pl, err := playlist.Parse(strings.NewReader(preview.Content))
	if err != nil || pl.Count != 2 {
		t.Errorf("preview does not parse back: %v", err)
	}
}

func TestPreviewPlaylistValidation(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	tests := []struct {
		name string
		body interface{}
	}{
		{"no files", map[string]interface{}{"name": "x"}},
		{"nothing selected", map[string]interface{}{"files": []map[string]interface{}{{"url": "h:21/a.mkv", "selected": false}}}},
		{"missing url", map[string]interface{}{"files": []map[string]interface{}{{"name": "a.mkv"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/playlists/preview", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestPlaylistLifecycle(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodPost, "/api/playlists", map[string]interface{}{"files": playlistBody("")["files"]})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/playlists", playlistBody("Breaking Bad S1"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created database.Playlist
	decodeBody(t, rec, &created)
	if created.EntryCount != 2 || created.GroupTitle != "Breaking Bad" || created.Description != "first season" {
		t.Errorf("unexpected stored playlist %+v", created)
	}

	rec = env.do(t, http.MethodGet, "/api/playlists", nil)
	var list []database.Playlist
	decodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	rec = env.do(t, http.MethodGet, "/api/playlists/1/download", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-mpegurl" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Breaking Bad S1.m3u"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "#EXTM3U\n") || rec.Body.String() != created.Content {
		t.Error("download body does not match stored content")
	}

	rec = env.do(t, http.MethodDelete, "/api/playlists/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/playlists/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/playlists/1/download", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("download after delete status = %d, want 404", rec.Code)
	}
}

func TestPlaylistOptionsFlatten(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	body := playlistBody("flat")
	body["organizeBySeasons"] = false
	body["groupTitle"] = ""

	rec := env.do(t, http.MethodPost, "/api/playlists/preview", body)
	var preview PreviewResponse
	decodeBody(t, rec, &preview)

	if strings.Contains(preview.Content, "group-title") {
		t.Errorf("no group title expected:\n%s", preview.Content)
	}
}

func TestSettings(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodPost, "/api/settings", map[string]interface{}{
		"defaultFileTypes": "mp4,mkv",
		"autoSelect":       true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body)
	}

	rec = env.do(t, http.MethodGet, "/api/settings", nil)
	var got map[string]string
	decodeBody(t, rec, &got)
	want := map[string]string{"defaultFileTypes": "mp4,mkv", "autoSelect": "true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestClearCache(t *testing.T) {
	env := setupTestHandlers(t, breakingBadTree(), false)
	search := map[string]interface{}{"host": "nas", "searchTerm": "Breaking Bad"}

	env.do(t, http.MethodPost, "/api/search", search)
	env.do(t, http.MethodPost, "/api/search", search)
	if env.dialer.Dials() != 1 {
		t.Fatalf("second search should be cached, dials = %d", env.dialer.Dials())
	}

	rec := env.do(t, http.MethodPost, "/api/settings/clear-cache", nil)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	if body["success"] != true || body["cleared"] != float64(1) {
		t.Errorf("unexpected body %v", body)
	}

	env.do(t, http.MethodPost, "/api/search", search)
	if env.dialer.Dials() != 2 {
		t.Errorf("search after clear should dial again, dials = %d", env.dialer.Dials())
	}
}
