package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/matcher"
	"ftp-m3u/internal/search"
)

// DatabaseFile is the SQLite file name inside DATABASE_DIR.
const DatabaseFile = "ftp-m3u.db"

// Config holds all application configuration
type Config struct {
	DatabaseDir     string
	StaticDir       string
	Port            string
	MetricsPort     string
	LogStaticFiles  bool
	LogHealthChecks bool
	MetricsEnabled  bool
	AuthEnabled     bool

	FTPTimeout      time.Duration
	SearchMaxDepth  int
	SearchCacheTTL  time.Duration
	MatchTokenRatio float64

	// Derived paths
	DatabasePath string
}

// SearchConfig returns the search service settings.
func (c *Config) SearchConfig() search.Config {
	policy := matcher.DefaultPolicy()
	policy.TokenRatio = c.MatchTokenRatio
	return search.Config{
		MaxDepth: c.SearchMaxDepth,
		Policy:   policy,
		CacheTTL: c.SearchCacheTTL,
	}
}

// readConfig reads every setting from getenv, applying defaults and
// warning about unparsable values.
func readConfig(getenv func(string) string) *Config {
	env := envReader{getenv: getenv}

	return &Config{
		DatabaseDir:     env.str("DATABASE_DIR", "/database"),
		StaticDir:       env.str("STATIC_DIR", "./static"),
		Port:            env.str("PORT", "8080"),
		MetricsPort:     env.str("METRICS_PORT", "9090"),
		LogStaticFiles:  env.boolean("LOG_STATIC_FILES", false),
		LogHealthChecks: env.boolean("LOG_HEALTH_CHECKS", true),
		MetricsEnabled:  env.boolean("METRICS_ENABLED", true),
		AuthEnabled:     env.boolean("AUTH_ENABLED", false),
		FTPTimeout:      env.duration("FTP_TIMEOUT", 30*time.Second, 0),
		SearchMaxDepth:  env.integer("SEARCH_MAX_DEPTH", 3, 0),
		SearchCacheTTL:  env.duration("SEARCH_CACHE_TTL", 5*time.Minute, 0),
		MatchTokenRatio: env.ratio("MATCH_TOKEN_RATIO", matcher.DefaultPolicy().TokenRatio),
	}
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	logBuildInfo()

	logHeader("CONFIGURATION")
	config := readConfig(os.Getenv)

	logging.Info("  DATABASE_DIR:        %s", config.DatabaseDir)
	logging.Info("  STATIC_DIR:          %s", config.StaticDir)
	logging.Info("  PORT:                %s", config.Port)
	logging.Info("  METRICS_PORT:        %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:     %v", config.MetricsEnabled)
	logging.Info("  AUTH_ENABLED:        %v", config.AuthEnabled)
	logging.Info("  FTP_TIMEOUT:         %v", config.FTPTimeout)
	logging.Info("  SEARCH_MAX_DEPTH:    %d", config.SearchMaxDepth)
	logging.Info("  SEARCH_CACHE_TTL:    %v", config.SearchCacheTTL)
	logging.Info("  MATCH_TOKEN_RATIO:   %.2f", config.MatchTokenRatio)
	logging.Info("  LOG_STATIC_FILES:    %v", config.LogStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", config.LogHealthChecks)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	logging.Info("")
	logHeader("DIRECTORY SETUP")

	databaseDir, err := filepath.Abs(config.DatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	config.DatabaseDir = databaseDir
	config.DatabasePath = filepath.Join(databaseDir, DatabaseFile)
	logging.Info("  Database directory (absolute): %s", databaseDir)

	if err := ensureDirectory(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}

	logging.Debug("  Testing database directory write access...")
	if err := testWriteAccess(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable (required for database): %w", err)
	}
	logging.Info("  [OK] Database directory is writable")

	if info, err := os.Stat(config.StaticDir); err != nil || !info.IsDir() {
		logging.Warn("  Static directory %s not found, web UI will not be served", config.StaticDir)
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Database:      ENABLED (required)")
	logging.Info("    Search cache:  %s", enabledString(config.SearchCacheTTL > 0))
	logging.Info("    Auth:          %s", enabledString(config.AuthEnabled))
	logging.Info("    Metrics:       %s", enabledString(config.MetricsEnabled))

	return config, nil
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) str(key, def string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return def
}

func (e envReader) boolean(key string, def bool) bool {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, v, def)
		return def
	}
	return parsed
}

// duration parses a Go duration no smaller than minimum.
func (e envReader) duration(key string, def, minimum time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed < minimum {
		logging.Warn("Invalid duration for %s: %q, using default: %v", key, v, def)
		return def
	}
	return parsed
}

func (e envReader) integer(key string, def, minimum int) int {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < minimum {
		logging.Warn("Invalid integer for %s: %q, using default: %d", key, v, def)
		return def
	}
	return parsed
}

// ratio parses a value in (0, 1].
func (e envReader) ratio(key string, def float64) float64 {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || parsed <= 0 || parsed > 1 {
		logging.Warn("Invalid ratio for %s: %q, using default: %.2f", key, v, def)
		return def
	}
	return parsed
}

func ensureDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}
