package mediatypes

import "strings"

// EntryKind classifies a remote directory entry.
type EntryKind string

const (
	// KindFile is a regular file.
	KindFile EntryKind = "file"
	// KindDirectory is a directory.
	KindDirectory EntryKind = "directory"
	// KindLink is a symbolic link. Links are neither listed nor matched.
	KindLink EntryKind = "link"
)

// DirectoryEntry is one item returned by a remote directory listing.
type DirectoryEntry struct {
	Name string    `json:"name"`
	Kind EntryKind `json:"kind"`
	// Size in bytes. Zero or negative means the server did not report one.
	Size int64 `json:"size"`
}

// IsDir reports whether the entry is a directory.
func (e DirectoryEntry) IsDir() bool {
	return e.Kind == KindDirectory
}

// IsFile reports whether the entry is a regular file.
func (e DirectoryEntry) IsFile() bool {
	return e.Kind == KindFile
}

// MediaEntry is a matched media file ready to be selected into a playlist.
type MediaEntry struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Season   *int   `json:"season"`
	Episode  *int   `json:"episode"`
	Size     string `json:"size,omitempty"`
	Selected bool   `json:"selected"`
}

// HasEpisode reports whether both season and episode are known.
func (m MediaEntry) HasEpisode() bool {
	return m.Season != nil && m.Episode != nil
}

// PlaylistOptions controls how a playlist is composed.
type PlaylistOptions struct {
	Name              string `json:"name"`
	GroupTitle        string `json:"groupTitle"`
	OrganizeBySeasons bool   `json:"organizeBySeasons"`
	SortNumerically   bool   `json:"sortNumerically"`
}

// DefaultPlaylistOptions returns options with the documented fallbacks:
// no group title, season grouping and numeric sorting on.
func DefaultPlaylistOptions(name string) PlaylistOptions {
	return PlaylistOptions{
		Name:              name,
		OrganizeBySeasons: true,
		SortNumerically:   true,
	}
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// DefaultFileTypes are searched when the caller does not name any.
var DefaultFileTypes = []string{"mp4", "mkv", "avi"}

// VideoExtensions maps file extensions to whether they are common video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
}

// M3UMimeType is the content type used when serving generated playlists.
const M3UMimeType = "application/x-mpegurl"

// NormalizeExtensions lowercases extensions and gives each a leading dot.
// Blank values are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// HasExtension reports whether name ends with one of the normalized
// extensions, ignoring case.
func HasExtension(name string, normalized []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range normalized {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// NonVideoExtensions returns the normalized extensions that are not in
// VideoExtensions, in input order.
func NonVideoExtensions(normalized []string) []string {
	var out []string
	for _, ext := range normalized {
		if !VideoExtensions[ext] {
			out = append(out, ext)
		}
	}
	return out
}
