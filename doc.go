// Package main provides the entry point for the ftp-m3u web application.
//
// ftp-m3u connects to an FTP server, searches its directory tree for media
// files matching a title, and builds M3U playlists from the selected
// results. Saved servers, playlists and settings live in SQLite.
//
// # Application Lifecycle
//
//  1. Memory Configuration: sets GOMEMLIMIT from MEMORY_LIMIT or the cgroup limit
//  2. Configuration Loading: reads environment variables and validates directories
//  3. Database Initialization: opens the SQLite database and runs migrations
//  4. Component Initialization: metrics collector and FTP search service
//  5. HTTP Server Setup: routes, middleware, and the optional metrics server
//  6. Graceful Shutdown: handles SIGINT/SIGTERM and stops every component
//
// # Middleware
//
// Requests pass through compression, W3C access logging, Prometheus request
// metrics and, when AUTH_ENABLED is set, session authentication.
//
// # Environment Variables
//
//   - PORT: main HTTP server port (default: 8080)
//   - METRICS_PORT: metrics server port (default: 9090)
//   - METRICS_ENABLED: enable the metrics server (default: true)
//   - DATABASE_DIR: directory for the SQLite database (default: /database)
//   - STATIC_DIR: directory served at / (default: ./static)
//   - AUTH_ENABLED: require a password for the UI and API (default: false)
//   - FTP_TIMEOUT: FTP dial and command timeout (default: 30s)
//   - SEARCH_MAX_DEPTH: folder depth explored below / (default: 3)
//   - SEARCH_CACHE_TTL: how long search results are cached, 0 disables (default: 5m)
//   - MATCH_TOKEN_RATIO: share of title words a filename must contain (default: 0.75)
//   - LOG_LEVEL: logging level (debug/info/warn/error)
//   - LOG_STATIC_FILES, LOG_HEALTH_CHECKS: access log filtering
//
// # Related Packages
//
//   - [ftp-m3u/internal/search]: search orchestration and result cache
//   - [ftp-m3u/internal/explorer]: heuristic folder discovery
//   - [ftp-m3u/internal/matcher]: filename matching and episode inference
//   - [ftp-m3u/internal/playlist]: M3U composition and title cleanup
//   - [ftp-m3u/internal/database]: SQLite storage
//   - [ftp-m3u/internal/handlers]: HTTP request handlers
//   - [ftp-m3u/internal/startup]: configuration and startup logging
package main
