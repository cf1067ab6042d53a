// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable the metrics server (default: true)
//   - DATABASE_DIR: Directory holding ftp-m3u.db (default: /database)
//   - STATIC_DIR: Web UI assets (default: ./static)
//   - AUTH_ENABLED: Require the single-password login for the API (default: false)
//   - FTP_TIMEOUT: Dial and command timeout (default: 30s)
//   - SEARCH_MAX_DEPTH: Folder exploration depth (default: 3)
//   - SEARCH_CACHE_TTL: Search result cache lifetime, 0 disables (default: 5m)
//   - MATCH_TOKEN_RATIO: Token share required by long search terms (default: 0.75)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - MEMORY_LIMIT, MEMORY_RATIO, GOMEMLIMIT: see package memory
//
// Invalid values are logged and replaced by their defaults. The database
// directory is created if needed and must be writable.
//
// # Build Information
//
// Version, Commit and BuildTime are set at build time:
//
//	go build -ldflags "-X ftp-m3u/internal/startup.Version=1.0.0 \
//	  -X ftp-m3u/internal/startup.Commit=$(git rev-parse HEAD)"
package startup
