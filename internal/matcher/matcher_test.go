package matcher

import (
	"context"
	"testing"

	"ftp-m3u/internal/ftpclient/ftptest"
	"ftp-m3u/internal/mediatypes"

	"github.com/google/go-cmp/cmp"
)

const origin = "ftp.example.com:21"

func TestMatchBuildsEntries(t *testing.T) {
	tree := ftptest.NewTree().
		AddFile("/Breaking.Bad.S01E01.mkv", 1536).
		AddFile("/TV/Breaking Bad/Breaking.Bad.S01E02.720p.BluRay.x264.mkv", 1610612736).
		AddFile("/TV/Breaking Bad/Breaking%20Bad%20S01E03.mp4", 0).
		AddFile("/TV/Breaking Bad/notes.txt", 10).
		AddFile("/TV/Breaking Bad/Better.Call.Saul.S01E01.mkv", 10).
		AddDir("/TV/Breaking Bad/Breaking Bad Extras")

	m := New(DefaultPolicy())
	got := m.Match(context.Background(), tree, origin,
		[]string{"/", "/TV/Breaking Bad"}, "Breaking Bad", mediatypes.DefaultFileTypes)

	want := []mediatypes.MediaEntry{
		{
			URL:      "ftp.example.com:21/Breaking.Bad.S01E01.mkv",
			Name:     "Breaking.Bad.S01E01.mkv",
			Season:   mediatypes.IntPtr(1),
			Episode:  mediatypes.IntPtr(1),
			Size:     "1.5KB",
			Selected: true,
		},
		{
			URL:      "ftp.example.com:21/TV/Breaking Bad/Breaking.Bad.S01E02.720p.BluRay.x264.mkv",
			Name:     "Breaking.Bad.S01E02.720p.BluRay.x264.mkv",
			Season:   mediatypes.IntPtr(1),
			Episode:  mediatypes.IntPtr(2),
			Size:     "1.5GB",
			Selected: true,
		},
		{
			URL:      "ftp.example.com:21/TV/Breaking Bad/Breaking%20Bad%20S01E03.mp4",
			Name:     "Breaking Bad S01E03.mp4",
			Season:   mediatypes.IntPtr(1),
			Episode:  mediatypes.IntPtr(3),
			Selected: true,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Match() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchExtensionFilter(t *testing.T) {
	tree := ftptest.NewTree().AddFile("/movie.mkv", 100)

	got := New(DefaultPolicy()).Match(context.Background(), tree, origin, []string{"/"}, "movie", []string{"mp4"})
	if len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}

func TestMatchExtensionCaseInsensitive(t *testing.T) {
	tree := ftptest.NewTree().AddFile("/Lost.S01E01.MKV", 100)

	got := New(DefaultPolicy()).Match(context.Background(), tree, origin, []string{"/"}, "Lost", []string{".Mkv"})
	if len(got) != 1 {
		t.Fatalf("expected one match, got %+v", got)
	}
}

func TestMatchMalformedEscapeKeepsRawName(t *testing.T) {
	tree := ftptest.NewTree().AddFile("/Breaking%ZZBad.mp4", 100)

	got := New(DefaultPolicy()).Match(context.Background(), tree, origin, []string{"/"}, "Breaking Bad", nil)

	// nil extensions match nothing.
	if len(got) != 0 {
		t.Fatalf("expected no matches without extensions, got %+v", got)
	}

	got = New(DefaultPolicy()).Match(context.Background(), tree, origin, []string{"/"}, "Breaking Bad", []string{"mp4"})
	if len(got) != 1 || got[0].Name != "Breaking%ZZBad.mp4" {
		t.Fatalf("expected raw name to be kept, got %+v", got)
	}
}

func TestMatchSkipsFailingFolders(t *testing.T) {
	tree := ftptest.NewTree().
		AddFile("/A/Lost.S01E01.mp4", 1).
		AddFile("/B/Lost.S01E02.mp4", 1).
		FailPath("/A")

	got := New(DefaultPolicy()).Match(context.Background(), tree, origin, []string{"/A", "/B"}, "Lost", []string{"mp4"})

	if len(got) != 1 || got[0].Name != "Lost.S01E02.mp4" {
		t.Errorf("expected only the /B match, got %+v", got)
	}
}

func TestMatchEmptyTerm(t *testing.T) {
	tree := ftptest.NewTree().AddFile("/a.mp4", 1)

	if got := New(DefaultPolicy()).Match(context.Background(), tree, origin, []string{"/"}, "  ", []string{"mp4"}); got != nil {
		t.Errorf("expected nil for empty term, got %+v", got)
	}
	if len(tree.Listed()) != 0 {
		t.Error("empty term should not list anything")
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		folder, name, want string
	}{
		{"/", "a.mp4", "h:21/a.mp4"},
		{"/TV/Show", "a b.mp4", "h:21/TV/Show/a b.mp4"},
	}
	for _, tt := range tests {
		if got := BuildURL("h:21", tt.folder, tt.name); got != tt.want {
			t.Errorf("BuildURL(%q, %q) = %q, want %q", tt.folder, tt.name, got, tt.want)
		}
	}
}
