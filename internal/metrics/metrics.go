package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftp_m3u_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ftp_m3u_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ftp_m3u_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftp_m3u_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ftp_m3u_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ftp_m3u_db_connections_open",
			Help: "Number of open database connections",
		},
	)

	DBSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ftp_m3u_db_size_bytes",
			Help: "Size of SQLite database files in bytes",
		},
		[]string{"file"}, // "main", "wal", "shm"
	)
)

// FTP metrics
var (
	FTPConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftp_m3u_ftp_connections_total",
			Help: "Total number of FTP connection attempts",
		},
		[]string{"status"},
	)

	FTPListingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftp_m3u_ftp_listings_total",
			Help: "Total number of FTP directory listings",
		},
		[]string{"status"},
	)

	FTPListDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ftp_m3u_ftp_list_duration_seconds",
			Help:    "FTP directory listing duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	FTPEntriesListed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ftp_m3u_ftp_entries_listed_total",
			Help: "Total number of directory entries returned by FTP listings",
		},
	)
)

// Search metrics
var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftp_m3u_search_requests_total",
			Help: "Total number of media searches",
		},
		[]string{"status"}, // "success", "invalid", "connection_error", "error"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ftp_m3u_search_duration_seconds",
			Help:    "End-to-end media search duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SearchCandidateFolders = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ftp_m3u_search_candidate_folders",
			Help:    "Number of candidate folders produced by directory exploration",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	SearchMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftp_m3u_search_matches_total",
			Help: "Total number of matched media files by matching tier",
		},
		[]string{"tier"},
	)

	SearchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ftp_m3u_search_cache_hits_total",
			Help: "Total number of search result cache hits",
		},
	)

	SearchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ftp_m3u_search_cache_misses_total",
			Help: "Total number of search result cache misses",
		},
	)
)

// Playlist metrics
var (
	PlaylistsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ftp_m3u_playlists_generated_total",
			Help: "Total number of M3U playlists generated",
		},
	)

	PlaylistEntries = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ftp_m3u_playlist_entries",
			Help:    "Number of entries per generated playlist",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)

// Library metrics
var (
	ServersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ftp_m3u_servers_total",
			Help: "Number of saved FTP servers",
		},
	)

	PlaylistsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ftp_m3u_playlists_total",
			Help: "Number of saved playlists",
		},
	)
)

// Authentication metrics
var (
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftp_m3u_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ftp_m3u_active_sessions",
			Help: "Number of active user sessions",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ftp_m3u_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
