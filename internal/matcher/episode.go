package matcher

import (
	"regexp"
	"strconv"

	"ftp-m3u/internal/mediatypes"
)

// EpisodeRule pairs a filename pattern with an extraction function. Rules
// are evaluated in order by [InferEpisode]; first match wins.
type EpisodeRule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(matches []string) (season, episode *int, ok bool)
}

var (
	reSxxExx         = regexp.MustCompile(`(?i)s(\d+)e(\d+)`)
	re1x01           = regexp.MustCompile(`(?i)(\d+)x(\d+)`)
	reSeasonEpisode  = regexp.MustCompile(`(?i)season\s*(\d+)\s*episode\s*(\d+)`)
	reEpisodeKeyword = regexp.MustCompile(`(?i)ep(?:isode)?\s*(\d+)`)
	reSeasonOnly     = regexp.MustCompile(`(?i)season\s*(\d+)`)
)

// EpisodeRules is the ordered rule table.
var EpisodeRules = []EpisodeRule{
	{"SxxExx", reSxxExx, extractPair},
	{"1x01", re1x01, extractPair},
	{"Season-Episode", reSeasonEpisode, extractPair},
	{"Episode-keyword", reEpisodeKeyword, extractEpisodeOnly},
	{"Season-only", reSeasonOnly, extractSeasonOnly},
}

func atoi(s string) (*int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return mediatypes.IntPtr(n), true
}

func extractPair(m []string) (*int, *int, bool) {
	season, ok := atoi(m[1])
	if !ok {
		return nil, nil, false
	}
	episode, ok := atoi(m[2])
	if !ok {
		return nil, nil, false
	}
	return season, episode, true
}

// Episode-only names are assumed to belong to season 1.
func extractEpisodeOnly(m []string) (*int, *int, bool) {
	episode, ok := atoi(m[1])
	if !ok {
		return nil, nil, false
	}
	return mediatypes.IntPtr(1), episode, true
}

func extractSeasonOnly(m []string) (*int, *int, bool) {
	season, ok := atoi(m[1])
	if !ok {
		return nil, nil, false
	}
	return season, nil, true
}

// InferEpisode extracts season and episode numbers from a file name. Either
// may be nil when the name does not carry it.
func InferEpisode(name string) (season, episode *int) {
	for _, rule := range EpisodeRules {
		m := rule.Pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if s, e, ok := rule.Extract(m); ok {
			return s, e
		}
	}
	return nil, nil
}
