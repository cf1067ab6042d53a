package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/ftpclient/ftptest"
	"ftp-m3u/internal/mediatypes"
)

func useDialer(t *testing.T, d *ftptest.Dialer) {
	t.Helper()
	orig := newDialer
	newDialer = func(time.Duration) ftpclient.Dialer { return d }
	t.Cleanup(func() { newDialer = orig })
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchCommand(t *testing.T) {
	tree := ftptest.NewTree().
		AddFile("/Breaking Bad/Breaking.Bad.S02E03.mkv", 2048).
		AddFile("/Breaking Bad/cover.jpg", 10)
	dialer := &ftptest.Dialer{Tree: tree}
	useDialer(t, dialer)

	stdout, stderr, err := execute(t, "", "search", "--host", "nas", "--port", "2121", "--user", "me", "Breaking", "Bad")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	var results []mediatypes.MediaEntry
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].URL != "nas:2121/Breaking Bad/Breaking.Bad.S02E03.mkv" {
		t.Errorf("URL = %q", results[0].URL)
	}
	if !strings.Contains(stderr, "Found 1 matching files") {
		t.Errorf("stderr = %q", stderr)
	}

	info := dialer.LastInfo()
	if info.Port != 2121 || info.Username != "me" {
		t.Errorf("connection info = %+v", info)
	}
}

func TestSearchCommandPasswordFromEnv(t *testing.T) {
	dialer := &ftptest.Dialer{Tree: ftptest.NewTree()}
	useDialer(t, dialer)
	t.Setenv("FTP_PASSWORD", "s3cret")

	stdout, _, err := execute(t, "", "search", "--host", "nas", "anything")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "[]" {
		t.Errorf("stdout = %q, want []", stdout)
	}
	if dialer.LastInfo().Password != "s3cret" {
		t.Error("FTP_PASSWORD was not used")
	}
}

func TestSearchCommandErrors(t *testing.T) {
	dialer := &ftptest.Dialer{Tree: ftptest.NewTree(), Err: errors.New("connection refused")}
	useDialer(t, dialer)

	if _, _, err := execute(t, "", "search", "term"); err == nil {
		t.Error("expected error without --host")
	}
	if _, _, err := execute(t, "", "search", "--host", "nas"); err == nil {
		t.Error("expected error without a term")
	}

	_, _, err := execute(t, "", "search", "--host", "nas", "term")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("err = %v, want connection failure", err)
	}
}

const entriesJSON = `[
  {"url": "nas:21/BB/Breaking.Bad.S01E02.mkv", "name": "Breaking.Bad.S01E02.mkv", "season": 1, "episode": 2},
  {"url": "nas:21/BB/Breaking.Bad.S01E01.mkv", "name": "Breaking.Bad.S01E01.mkv", "season": 1, "episode": 1, "selected": true},
  {"url": "nas:21/BB/sample.mkv", "name": "sample.mkv", "selected": false}
]`

func TestGenerateCommandToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "entries.json")
	output := filepath.Join(dir, "out.m3u")
	if err := os.WriteFile(input, []byte(entriesJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execute(t, "", "generate", "--group", "Breaking Bad", "-o", output, input)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "#EXTM3U\n" +
		"#EXTINF:-1 group-title=\"Breaking Bad S01\",Breaking Bad - S01E01\n" +
		"nas:21/BB/Breaking.Bad.S01E01.mkv\n" +
		"#EXTINF:-1 group-title=\"Breaking Bad S01\",Breaking Bad - S01E02\n" +
		"nas:21/BB/Breaking.Bad.S01E02.mkv\n"
	if string(data) != want {
		t.Errorf("playlist =\n%s\nwant\n%s", data, want)
	}
	if !strings.Contains(stderr, "Wrote 2 entries") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestGenerateCommandFromStdin(t *testing.T) {
	stdout, _, err := execute(t, entriesJSON, "generate", "--flat", "--no-sort")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), stdout)
	}
	if lines[2] != "nas:21/BB/Breaking.Bad.S01E02.mkv" {
		t.Errorf("input order not kept, first URL %q", lines[2])
	}
	if strings.Contains(stdout, "sample.mkv") {
		t.Error("deselected entry was written")
	}
}

func TestGenerateCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{"not json", "nope"},
		{"nothing selected", `[{"url": "h:21/a.mkv", "selected": false}]`},
		{"missing url", `[{"name": "a.mkv"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.stdin, "generate"); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, _, err := execute(t, "", "generate", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" mkv, ,MP4,")
	if len(got) != 2 || got[0] != "mkv" || got[1] != "MP4" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("empty input should give nil")
	}
}
