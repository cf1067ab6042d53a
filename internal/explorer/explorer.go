// Package explorer discovers the remote folders likely to hold media for a
// search term.
//
// Exploration is heuristic. Folders whose path mentions "movie" are treated
// as movie libraries: their children are accepted when they look like
// alphabetical, year or genre buckets, or mention the term, and are not
// descended into. Elsewhere, children mentioning a term token are accepted
// and descended into, and season-like children are accepted as leaves.
package explorer

import (
	"context"
	"regexp"
	"strings"

	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/query"
)

// DefaultMaxDepth is the deepest level that is still listed. The root is
// depth 0.
const DefaultMaxDepth = 3

var (
	folderYearRe = regexp.MustCompile(`(?:19|20)\d{2}`)
	seasonDirRe  = regexp.MustCompile(`(?i)season|s\d+`)

	genres = []string{"action", "drama", "comedy", "horror", "thriller"}
)

// Explorer walks a remote tree looking for candidate folders.
type Explorer struct {
	// MaxDepth bounds listing. A folder deeper than MaxDepth is still
	// returned as a candidate but is never listed.
	MaxDepth int
}

// New returns an Explorer. A negative maxDepth selects DefaultMaxDepth.
func New(maxDepth int) *Explorer {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Explorer{MaxDepth: maxDepth}
}

type folder struct {
	path  string
	depth int
}

// Explore returns the candidate folders under root for term, root first.
// Listing failures are logged and the affected folder is kept without its
// children, so the result is partial rather than empty. Each path appears
// once.
func (e *Explorer) Explore(ctx context.Context, lister ftpclient.Lister, root, term string) []string {
	if root == "" {
		root = "/"
	}
	q := query.Parse(term)

	seen := map[string]bool{root: true}
	folders := []string{root}
	queue := []folder{{path: root}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			logging.Warn("Folder exploration stopped early: %v", err)
			break
		}

		current := queue[0]
		queue = queue[1:]

		if current.depth > e.MaxDepth {
			continue
		}

		listing, err := lister.List(ctx, current.path)
		if err != nil {
			logging.Warn("Skipping folder %s during exploration: %v", current.path, err)
			continue
		}

		movieStyle := isMovieFolder(current.path)

		for _, entry := range listing {
			if !entry.IsDir() || entry.Name == "." || entry.Name == ".." {
				continue
			}

			childPath := joinPath(current.path, entry.Name)
			if seen[childPath] {
				continue
			}

			name := strings.ToLower(entry.Name)
			accept, descend := classify(q, name, movieStyle)
			if !accept {
				continue
			}

			seen[childPath] = true
			folders = append(folders, childPath)
			if descend {
				queue = append(queue, folder{path: childPath, depth: current.depth + 1})
			}
		}
	}

	logging.Debug("Explored %q from %s: %d candidate folders", term, root, len(folders))
	return folders
}

// classify decides whether a lowercased child folder name is a candidate and
// whether it should be explored further.
func classify(q query.Query, name string, movieStyle bool) (accept, descend bool) {
	if movieStyle {
		return isMovieCandidate(q, name), false
	}

	if q.AnyTokenIn(name) {
		return true, true
	}
	if seasonDirRe.MatchString(name) {
		return true, false
	}
	return false, false
}

func isMovieCandidate(q query.Query, name string) bool {
	if first, ok := q.FirstRune(); ok && strings.HasPrefix(name, string(first)) {
		return true
	}
	if folderYearRe.MatchString(name) {
		return true
	}
	if q.AnyTokenIn(name) {
		return true
	}
	for _, g := range genres {
		if strings.Contains(name, g) {
			return true
		}
	}
	return false
}

func isMovieFolder(path string) bool {
	return strings.Contains(strings.ToLower(path), "movie")
}

func joinPath(base, name string) string {
	if base == "/" {
		base = ""
	}
	return base + "/" + name
}
