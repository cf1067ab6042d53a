// Package metrics provides Prometheus instrumentation for the ftp-m3u application.
//
// All metrics are registered with the default registry through promauto and
// are prefixed with "ftp_m3u_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Database Metrics
//
//   - DBQueryTotal: Counter of queries by operation and status
//   - DBQueryDuration: Histogram of query duration by operation
//   - DBConnectionsOpen: Gauge of open database connections
//   - DBSizeBytes: Gauge of database file sizes (main, WAL, SHM)
//
// ## FTP Metrics
//
//   - FTPConnectionsTotal: Counter of connection attempts by status
//   - FTPListingsTotal: Counter of directory listings by status
//   - FTPListDuration: Histogram of listing duration
//   - FTPEntriesListed: Counter of entries returned by listings
//
// ## Search and Playlist Metrics
//
//   - SearchRequestsTotal: Counter of searches by outcome
//   - SearchDuration: Histogram of end-to-end search time
//   - SearchCandidateFolders: Histogram of folders produced by exploration
//   - SearchMatchesTotal: Counter of matched files by matching tier
//   - SearchCacheHits / SearchCacheMisses: result cache effectiveness
//   - PlaylistsGeneratedTotal, PlaylistEntries: playlist output
//   - ServersTotal, PlaylistsTotal: saved records, updated by [Collector]
//
// ## Authentication Metrics
//
//   - AuthAttemptsTotal: Counter by status (success/failure)
//   - ActiveSessions: Gauge of active user sessions
//
// # Usage
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// # Collector
//
//	collector := metrics.NewCollector(statsProvider, dbPath, 1*time.Minute)
//	collector.Start()
//	defer collector.Stop()
//
// # Prometheus Queries
//
// Search failure rate by cause:
//
//	sum(rate(ftp_m3u_search_requests_total{status!="success"}[5m])) by (status)
//
// Share of matches found by each tier:
//
//	sum(rate(ftp_m3u_search_matches_total[1h])) by (tier)
//
// Search cache hit rate:
//
//	rate(ftp_m3u_search_cache_hits_total[5m]) /
//	(rate(ftp_m3u_search_cache_hits_total[5m]) + rate(ftp_m3u_search_cache_misses_total[5m]))
package metrics
