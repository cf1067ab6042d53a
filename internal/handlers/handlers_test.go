package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/ftpclient/ftptest"
	"ftp-m3u/internal/search"
	"ftp-m3u/internal/startup"

	"github.com/gorilla/mux"
)

type testEnv struct {
	h      *Handlers
	db     *database.Database
	dialer *ftptest.Dialer
	router http.Handler
}

// setupTestHandlers wires handlers to a temporary database and an in-memory
// FTP tree.
func setupTestHandlers(t *testing.T, tree *ftptest.Tree, authEnabled bool) *testEnv {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if tree == nil {
		tree = ftptest.NewTree()
	}
	dialer := &ftptest.Dialer{Tree: tree}
	svc := search.NewService(dialer, search.DefaultConfig())
	h := New(db, svc, &startup.Config{AuthEnabled: authEnabled})

	r := mux.NewRouter()
	RegisterRoutes(r, h)

	return &testEnv{h: h, db: db, dialer: dialer, router: h.AuthMiddleware(r)}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &search.ValidationError{Field: "host", Message: "required"}, http.StatusBadRequest},
		{"invalid input", database.ErrInvalidInput, http.StatusBadRequest},
		{"not found", database.ErrNotFound, http.StatusNotFound},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", bytes.ErrTooLarge, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, bytes.ErrTooLarge, "Failed to do the thing")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Failed to do the thing" {
		t.Errorf("message = %q", msg)
	}
}

func TestDownloadName(t *testing.T) {
	tests := map[string]string{
		"Breaking Bad":  "Breaking Bad.m3u",
		`a"b`:           "a_b.m3u",
		"../etc/passwd": ".._etc_passwd.m3u",
		"line\nbreak":   "linebreak.m3u",
		"   ":           "playlist.m3u",
	}
	for in, want := range tests {
		if got := downloadName(in); got != want {
			t.Errorf("downloadName(%q) = %q, want %q", in, got, want)
		}
	}
}
