package matcher

import (
	"context"
	"net/url"
	"strings"

	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/metrics"
	"ftp-m3u/internal/query"
)

// Matcher lists candidate folders and keeps the files relevant to a term.
type Matcher struct {
	Policy Policy
}

// New returns a Matcher using p.
func New(p Policy) *Matcher {
	return &Matcher{Policy: p}
}

// Match lists each folder and returns the media files whose name matches
// term and ends with one of extensions. origin is the host:port prefix of
// generated URLs. A folder that cannot be listed is logged and skipped.
func (m *Matcher) Match(ctx context.Context, lister ftpclient.Lister, origin string, folders []string, term string, extensions []string) []mediatypes.MediaEntry {
	if strings.TrimSpace(term) == "" {
		return nil
	}

	q := query.Parse(term)
	exts := mediatypes.NormalizeExtensions(extensions)
	results := []mediatypes.MediaEntry{}

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			logging.Warn("Media matching stopped early: %v", err)
			break
		}

		listing, err := lister.List(ctx, folder)
		if err != nil {
			logging.Warn("Skipping folder %s during matching: %v", folder, err)
			continue
		}

		for _, entry := range listing {
			if !entry.IsFile() || !mediatypes.HasExtension(entry.Name, exts) {
				continue
			}

			decoded := decodeName(entry.Name)
			tier, ok := MatchName(m.Policy, q, decoded)
			if !ok {
				continue
			}

			metrics.SearchMatchesTotal.WithLabelValues(tier).Inc()
			logging.Debug("Matched %s/%s via %s", strings.TrimSuffix(folder, "/"), entry.Name, tier)

			season, episode := InferEpisode(decoded)
			results = append(results, mediatypes.MediaEntry{
				URL:      BuildURL(origin, folder, entry.Name),
				Name:     decoded,
				Season:   season,
				Episode:  episode,
				Size:     FormatSize(entry.Size),
				Selected: true,
			})
		}
	}

	return results
}

// decodeName percent-decodes a remote file name, keeping the raw name when
// the escapes are malformed.
func decodeName(name string) string {
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return name
	}
	return decoded
}

// BuildURL joins origin, folder and the raw file name. The root folder
// contributes no path prefix.
func BuildURL(origin, folder, rawName string) string {
	if folder == "/" {
		folder = ""
	}
	return origin + folder + "/" + rawName
}
