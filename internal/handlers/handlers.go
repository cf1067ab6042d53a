package handlers

import (
	"time"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/search"
	"ftp-m3u/internal/startup"
)

// Handlers serves the HTTP API.
type Handlers struct {
	db          *database.Database
	search      *search.Service
	authEnabled bool
	startedAt   time.Time
}

// New returns handlers backed by db and svc.
func New(db *database.Database, svc *search.Service, config *startup.Config) *Handlers {
	return &Handlers{
		db:          db,
		search:      svc,
		authEnabled: config.AuthEnabled,
		startedAt:   time.Now(),
	}
}
