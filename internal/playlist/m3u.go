package playlist

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var attrRe = regexp.MustCompile(`([A-Za-z0-9_-]+)="([^"]*)"`)

// Playlist is a parsed M3U document.
type Playlist struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// Item is one #EXTINF entry and its location line.
type Item struct {
	Title      string `json:"title"`
	GroupTitle string `json:"groupTitle,omitempty"`
	URL        string `json:"url"`
}

// Parse reads an M3U document. Location lines without a preceding #EXTINF
// become items with an empty title. Other comment lines are ignored.
func Parse(r io.Reader) (*Playlist, error) {
	pl := &Playlist{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending *Item
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			item := parseExtInf(strings.TrimPrefix(line, "#EXTINF:"))
			pending = &item
		case strings.HasPrefix(line, "#"):
			continue
		default:
			item := Item{URL: line}
			if pending != nil {
				item = *pending
				item.URL = line
				pending = nil
			}
			pl.Items = append(pl.Items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	pl.Count = len(pl.Items)
	return pl, nil
}

// parseExtInf splits `<duration> <attrs>,<title>`. The title starts after
// the first comma outside a quoted attribute value.
func parseExtInf(info string) Item {
	inQuotes := false
	split := -1
	for i, r := range info {
		if r == '"' {
			inQuotes = !inQuotes
		} else if r == ',' && !inQuotes {
			split = i
			break
		}
	}

	var item Item
	attrs := info
	if split >= 0 {
		attrs = info[:split]
		item.Title = strings.TrimSpace(info[split+1:])
	}
	for _, m := range attrRe.FindAllStringSubmatch(attrs, -1) {
		if m[1] == "group-title" {
			item.GroupTitle = m[2]
		}
	}
	return item
}
