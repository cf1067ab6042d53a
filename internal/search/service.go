package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"

	"ftp-m3u/internal/explorer"
	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/matcher"
	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/metrics"
	"ftp-m3u/internal/playlist"

	"github.com/patrickmn/go-cache"
)

// RootPath is where every search starts.
const RootPath = "/"

// Request describes one search.
type Request struct {
	Host       string   `json:"host"`
	Port       int      `json:"port"`
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	SearchTerm string   `json:"searchTerm"`
	FileTypes  []string `json:"fileTypes"`
}

// ConnectionInfo returns the request's server and credentials with defaults
// applied.
func (r Request) ConnectionInfo() ftpclient.ConnectionInfo {
	return ftpclient.ConnectionInfo{
		Host:     r.Host,
		Port:     r.Port,
		Username: r.Username,
		Password: r.Password,
	}.WithDefaults()
}

// normalize trims the request and fills in defaults.
func (r Request) normalize() Request {
	info := r.ConnectionInfo()
	r.Host, r.Port, r.Username = info.Host, info.Port, info.Username
	r.SearchTerm = strings.TrimSpace(r.SearchTerm)
	exts := mediatypes.NormalizeExtensions(r.FileTypes)
	if len(exts) == 0 {
		r.FileTypes = mediatypes.DefaultFileTypes
		return r
	}
	if other := mediatypes.NonVideoExtensions(exts); len(other) > 0 {
		logging.Warn("Searching for non-video file types: %s", strings.Join(other, ", "))
	}
	return r
}

func (r Request) validate() error {
	if r.Host == "" {
		return &ValidationError{Field: "host", Message: "host is required"}
	}
	if r.SearchTerm == "" {
		return &ValidationError{Field: "searchTerm", Message: "search term is required"}
	}
	return nil
}

// cacheKey identifies results for a normalized request. The password only
// contributes its digest.
func (r Request) cacheKey() string {
	sum := sha256.Sum256([]byte(r.Password))
	exts := mediatypes.NormalizeExtensions(r.FileTypes)
	slices.Sort(exts)
	return fmt.Sprintf("%s|%d|%s|%s|%s|%s",
		strings.ToLower(r.Host), r.Port, r.Username, hex.EncodeToString(sum[:8]),
		strings.ToLower(r.SearchTerm), strings.Join(exts, ","))
}

// Config tunes a Service.
type Config struct {
	// MaxDepth bounds folder exploration. Negative selects the default.
	MaxDepth int
	Policy   matcher.Policy
	// CacheTTL is how long results are reused. Zero disables caching.
	CacheTTL time.Duration
}

// DefaultConfig returns the standard exploration depth, matching policy and
// a five minute cache.
func DefaultConfig() Config {
	return Config{
		MaxDepth: explorer.DefaultMaxDepth,
		Policy:   matcher.DefaultPolicy(),
		CacheTTL: 5 * time.Minute,
	}
}

// Service runs searches and builds playlists.
type Service struct {
	dialer   ftpclient.Dialer
	explorer *explorer.Explorer
	matcher  *matcher.Matcher
	cache    *cache.Cache
}

// NewService returns a Service that opens sessions through dialer.
func NewService(dialer ftpclient.Dialer, cfg Config) *Service {
	s := &Service{
		dialer:   dialer,
		explorer: explorer.New(cfg.MaxDepth),
		matcher:  matcher.New(cfg.Policy),
	}
	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

// Search finds media files on the requested server. On a connection failure
// no results are returned.
func (s *Service) Search(ctx context.Context, req Request) ([]mediatypes.MediaEntry, error) {
	start := time.Now()
	req = req.normalize()

	if err := req.validate(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	key := req.cacheKey()
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			metrics.SearchCacheHits.Inc()
			metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
			logging.Debug("Search cache hit for %q on %s", req.SearchTerm, req.Host)
			return slices.Clone(cached.([]mediatypes.MediaEntry)), nil
		}
		metrics.SearchCacheMisses.Inc()
	}

	results, err := s.run(ctx, req)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status := "error"
		if ftpclient.IsConnectionError(err) {
			status = "connection_error"
		}
		metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
	logging.Info("Search for %q on %s found %d files in %v",
		req.SearchTerm, req.Host, len(results), time.Since(start))

	if s.cache != nil {
		s.cache.Set(key, slices.Clone(results), cache.DefaultExpiration)
	}
	return results, nil
}

func (s *Service) run(ctx context.Context, req Request) ([]mediatypes.MediaEntry, error) {
	info := req.ConnectionInfo()

	session, err := s.dialer.Dial(ctx, info)
	if err != nil {
		logging.Warn("FTP connection to %s failed: %v", info.Addr(), err)
		return nil, err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			logging.Debug("Error closing FTP session to %s: %v", info.Addr(), closeErr)
		}
	}()

	folders := s.explorer.Explore(ctx, session, RootPath, req.SearchTerm)
	metrics.SearchCandidateFolders.Observe(float64(len(folders)))

	results := s.matcher.Match(ctx, session, info.Origin(), folders, req.SearchTerm, req.FileTypes)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search cancelled: %w", err)
	}
	return results, nil
}

// TestConnection opens and closes a session to check that the server is
// reachable with the given credentials.
func (s *Service) TestConnection(ctx context.Context, info ftpclient.ConnectionInfo) error {
	info = info.WithDefaults()
	if info.Host == "" {
		return &ValidationError{Field: "host", Message: "host is required"}
	}

	session, err := s.dialer.Dial(ctx, info)
	if err != nil {
		return err
	}
	if err := session.Close(); err != nil {
		logging.Debug("Error closing FTP session to %s: %v", info.Addr(), err)
	}
	logging.Info("FTP connection test to %s succeeded", info.Addr())
	return nil
}

// GeneratePlaylist composes the selected entries into an M3U document.
func (s *Service) GeneratePlaylist(entries []mediatypes.MediaEntry, opts mediatypes.PlaylistOptions) string {
	selected := Selected(entries)
	content := playlist.Compose(selected, opts)

	metrics.PlaylistsGeneratedTotal.Inc()
	metrics.PlaylistEntries.Observe(float64(len(selected)))
	logging.Debug("Generated playlist %q with %d of %d entries", opts.Name, len(selected), len(entries))
	return content
}

// Selected returns the entries marked selected, in order.
func Selected(entries []mediatypes.MediaEntry) []mediatypes.MediaEntry {
	out := make([]mediatypes.MediaEntry, 0, len(entries))
	for _, e := range entries {
		if e.Selected {
			out = append(out, e)
		}
	}
	return out
}

// ClearCache drops every cached search result.
func (s *Service) ClearCache() {
	if s.cache == nil {
		return
	}
	s.cache.Flush()
	logging.Info("Search cache cleared")
}

// CachedSearches returns how many result sets are cached.
func (s *Service) CachedSearches() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.ItemCount()
}
