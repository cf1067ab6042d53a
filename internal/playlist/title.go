package playlist

import (
	"fmt"
	"regexp"
	"strings"

	"ftp-m3u/internal/mediatypes"
)

var (
	releaseTagRe = regexp.MustCompile(`(?i)\b(?:720p|1080p|2160p|BluRay|WEB-DL|HDTV|x264|x265|AAC|HEVC)\b`)
	bracketedRe  = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	spaceRunRe   = regexp.MustCompile(`\s+`)

	separatorReplacer = strings.NewReplacer("._", " ", ".", " ", "_", " ")
)

// FormatTitle turns an entry's file name into a display title:
// "Breaking.Bad.S01E02.720p.BluRay.x264.mkv" becomes "Breaking Bad - S01E02".
func FormatTitle(e mediatypes.MediaEntry) string {
	title := e.Name
	if i := strings.LastIndex(title, "."); i > 0 {
		title = title[:i]
	}

	title = releaseTagRe.ReplaceAllString(title, "")
	title = bracketedRe.ReplaceAllString(title, "")
	// Removing brackets or separators can expose a tag as a standalone word.
	title = releaseTagRe.ReplaceAllString(title, "")
	title = separatorReplacer.Replace(title)
	title = releaseTagRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(spaceRunRe.ReplaceAllString(title, " "))

	if !e.HasEpisode() {
		return title
	}
	return withEpisodeTag(title, fmt.Sprintf("S%02dE%02d", *e.Season, *e.Episode))
}

// withEpisodeTag renders title as "<show> - <tag>[ - <rest>]". An existing
// occurrence of tag, in any case, is moved into that position rather than
// repeated.
func withEpisodeTag(title, tag string) string {
	start := indexFold(title, tag)
	if start < 0 {
		if title == "" {
			return tag
		}
		return title + " - " + tag
	}

	before := strings.Trim(title[:start], " -")
	after := strings.Trim(title[start+len(tag):], " -")

	out := tag
	if before != "" {
		out = before + " - " + tag
	}
	if after != "" {
		out += " - " + after
	}
	return out
}

// indexFold is a case-insensitive strings.Index for an ASCII needle.
func indexFold(s, needle string) int {
	for i := 0; i+len(needle) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
