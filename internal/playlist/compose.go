package playlist

import (
	"fmt"
	"slices"
	"strings"

	"ftp-m3u/internal/mediatypes"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Header is the first line of every extended M3U document.
const Header = "#EXTM3U"

// attrValueReplacer keeps attribute values inside their quotes and on one line.
var attrValueReplacer = strings.NewReplacer(`"`, "'", "\r", " ", "\n", " ")

// Compose renders entries as an extended M3U document. The input slice is
// not modified.
func Compose(entries []mediatypes.MediaEntry, opts mediatypes.PlaylistOptions) string {
	files := slices.Clone(entries)
	if opts.SortNumerically {
		SortEntries(files)
	}

	var b strings.Builder
	b.WriteString(Header + "\n")

	if !opts.OrganizeBySeasons {
		for _, f := range files {
			writeEntry(&b, opts.GroupTitle, f)
		}
		return b.String()
	}

	for _, group := range groupBySeason(files) {
		title := opts.GroupTitle
		if title != "" && group.season != nil {
			title = fmt.Sprintf("%s S%02d", title, *group.season)
		}
		for _, f := range group.entries {
			writeEntry(&b, title, f)
		}
	}
	return b.String()
}

func writeEntry(b *strings.Builder, groupTitle string, e mediatypes.MediaEntry) {
	b.WriteString("#EXTINF:-1")
	if groupTitle != "" {
		fmt.Fprintf(b, ` group-title="%s"`, attrValueReplacer.Replace(groupTitle))
	}
	b.WriteString(",")
	b.WriteString(FormatTitle(e))
	b.WriteString("\n")
	b.WriteString(e.URL)
	b.WriteString("\n")
}

type seasonGroup struct {
	season  *int
	entries []mediatypes.MediaEntry
}

// groupBySeason buckets entries by season, keeping their relative order.
// Groups are ordered by ascending season with the unknown season last.
func groupBySeason(entries []mediatypes.MediaEntry) []seasonGroup {
	var groups []seasonGroup
	index := map[int]int{}
	unknown := -1

	for _, e := range entries {
		if e.Season == nil {
			if unknown < 0 {
				unknown = len(groups)
				groups = append(groups, seasonGroup{})
			}
			groups[unknown].entries = append(groups[unknown].entries, e)
			continue
		}
		i, ok := index[*e.Season]
		if !ok {
			i = len(groups)
			index[*e.Season] = i
			groups = append(groups, seasonGroup{season: mediatypes.IntPtr(*e.Season)})
		}
		groups[i].entries = append(groups[i].entries, e)
	}

	slices.SortStableFunc(groups, func(a, b seasonGroup) int {
		return compareOptional(a.season, b.season)
	})
	return groups
}

// SortEntries orders entries in place by season, then episode, with unknown
// values last, then by name using English collation. The sort is stable.
func SortEntries(entries []mediatypes.MediaEntry) {
	c := collate.New(language.English)
	slices.SortStableFunc(entries, func(a, b mediatypes.MediaEntry) int {
		if n := compareOptional(a.Season, b.Season); n != 0 {
			return n
		}
		if n := compareOptional(a.Episode, b.Episode); n != 0 {
			return n
		}
		return c.CompareString(a.Name, b.Name)
	})
}

// compareOptional orders known values ascending and nil after them.
func compareOptional(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
