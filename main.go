package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/handlers"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/memory"
	"ftp-m3u/internal/metrics"
	"ftp-m3u/internal/middleware"
	"ftp-m3u/internal/search"
	"ftp-m3u/internal/startup"

	"github.com/gorilla/mux"
)

const (
	sessionCleanupInterval = 1 * time.Hour
	metricsInterval        = 1 * time.Minute
	shutdownTimeout        = 30 * time.Second
)

func main() {
	startTime := time.Now()

	startup.LogMemoryConfig(memory.Configure(os.Getenv))

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database: %v", err)
	}
	startup.LogDatabaseInit(time.Since(dbStart))

	// Clean up expired sessions periodically
	stopCleanup := make(chan struct{})
	go cleanSessions(db, stopCleanup)

	// Metrics
	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	collector := metrics.NewCollector(database.MetricsProvider{DB: db}, config.DatabasePath, metricsInterval)
	collector.Start()

	// Initialize search service
	dialer := ftpclient.InstrumentedDialer{Dialer: ftpclient.NewDialer(config.FTPTimeout)}
	svc := search.NewService(dialer, config.SearchConfig())
	startup.LogSearchInit(config)

	// Initialize handlers
	h := handlers.New(db, svc, config)

	// Setup router
	router := setupRouter(h, config.StaticDir)
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	srv := newServer(config.Port, buildHandler(h, router, config))

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = newMetricsServer(config.MetricsPort, h.MetricsHandler())
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go handleShutdown(sigChan, &app{
		srv:         srv,
		metricsSrv:  metricsSrv,
		collector:   collector,
		stopCleanup: stopCleanup,
		db:          db,
	}, done)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("Server error: %v", err)
	}
	// ListenAndServe returns as soon as Shutdown begins.
	<-done
}

func cleanSessions(db *database.Database, stop <-chan struct{}) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n, err := db.CleanExpiredSessions(context.Background())
			if err != nil {
				logging.Warn("Failed to clean expired sessions: %v", err)
				continue
			}
			if n > 0 {
				logging.Debug("Removed %d expired sessions", n)
			}
		}
	}
}

func setupRouter(h *handlers.Handlers, staticDir string) *mux.Router {
	r := mux.NewRouter()
	handlers.RegisterRoutes(r, h)

	// Static files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}

// buildHandler wraps the router in auth, metrics, access logging and
// compression, outermost last.
func buildHandler(h *handlers.Handlers, router http.Handler, config *startup.Config) http.Handler {
	handler := h.AuthMiddleware(router)
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	return middleware.Compression(middleware.DefaultCompressionConfig())(handler)
}

func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
}

func newMetricsServer(port string, metricsHandler http.Handler) *http.Server {
	m := http.NewServeMux()
	m.Handle("/metrics", metricsHandler)
	m.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &http.Server{
		Addr:              ":" + port,
		Handler:           m,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// app holds the running components in the order they are stopped.
type app struct {
	srv         *http.Server
	metricsSrv  *http.Server
	collector   *metrics.Collector
	stopCleanup chan struct{}
	db          *database.Database
}

// shutdown stops every component and returns once the database is closed.
func (a *app) shutdown(ctx context.Context) {
	_ = startup.ShutdownStep("HTTP server", func() error { return a.srv.Shutdown(ctx) })
	_ = startup.ShutdownStep("Metrics collector", func() error {
		a.collector.Stop()
		return nil
	})
	if a.metricsSrv != nil {
		_ = startup.ShutdownStep("Metrics server", func() error { return a.metricsSrv.Shutdown(ctx) })
	}
	_ = startup.ShutdownStep("Session cleanup", func() error {
		close(a.stopCleanup)
		return nil
	})
	_ = startup.ShutdownStep("Database", a.db.Close)
	logging.Info("  [OK] Shutdown complete")
}

// handleShutdown waits for a signal, stops the app and closes done.
func handleShutdown(sigChan <-chan os.Signal, a *app, done chan<- struct{}) {
	defer close(done)

	sig := <-sigChan
	startup.LogShutdown(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.shutdown(ctx)
}
