package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes adds the health, auth and API routes to r.
func RegisterRoutes(r *mux.Router, h *Handlers) {
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/setup-required", h.CheckSetupRequired).Methods(http.MethodGet)
	auth.HandleFunc("/setup", h.Setup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/check", h.CheckAuth).Methods(http.MethodGet)
	auth.HandleFunc("/password", h.ChangePassword).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.APIHealth).Methods(http.MethodGet)

	api.HandleFunc("/servers", h.ListServers).Methods(http.MethodGet)
	api.HandleFunc("/servers", h.CreateServer).Methods(http.MethodPost)
	api.HandleFunc("/servers/{id:[0-9]+}", h.GetServer).Methods(http.MethodGet)
	api.HandleFunc("/servers/{id:[0-9]+}", h.UpdateServer).Methods(http.MethodPut)
	api.HandleFunc("/servers/{id:[0-9]+}", h.DeleteServer).Methods(http.MethodDelete)

	api.HandleFunc("/connect", h.Connect).Methods(http.MethodPost)
	api.HandleFunc("/search", h.Search).Methods(http.MethodPost)

	api.HandleFunc("/playlists", h.ListPlaylists).Methods(http.MethodGet)
	api.HandleFunc("/playlists", h.CreatePlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/preview", h.PreviewPlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id:[0-9]+}", h.GetPlaylist).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id:[0-9]+}", h.DeletePlaylist).Methods(http.MethodDelete)
	api.HandleFunc("/playlists/{id:[0-9]+}/download", h.DownloadPlaylist).Methods(http.MethodGet)

	api.HandleFunc("/settings", h.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.SaveSettings).Methods(http.MethodPost)
	api.HandleFunc("/settings/clear-cache", h.ClearCache).Methods(http.MethodPost)
}
