package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/metrics"
)

// PasswordRequest carries the password for setup and login.
type PasswordRequest struct {
	Password string `json:"password"`
}

// PasswordChangeRequest represents a request to change the password
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse represents the response from authentication endpoints
type AuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"` // seconds
}

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "ftp_m3u_session"

	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	setSessionCookie(w, "", time.Unix(0, 0))
}

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordLength {
		return errors.New("password must not exceed 72 characters")
	}
	return nil
}

// CheckSetupRequired returns whether initial setup is needed
func (h *Handlers) CheckSetupRequired(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]bool{
		"needsSetup":  !h.db.HasUsers(r.Context()),
		"authEnabled": h.authEnabled,
	})
}

// Setup creates the initial password
func (h *Handlers) Setup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.db.HasUsers(ctx) {
		writeJSONError(w, "Setup already completed", http.StatusForbidden)
		return
	}

	var req PasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}
	if err := checkPasswordLength(req.Password); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.db.CreateUser(ctx, req.Password); err != nil {
		if errors.Is(err, database.ErrUserExists) {
			writeJSONError(w, "Setup already completed", http.StatusForbidden)
			return
		}
		writeError(w, err, "Failed to create user")
		return
	}

	logging.Info("Initial password configured")

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AuthResponse{Success: true, Message: "Password configured successfully"})
}

// Login authenticates with password
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	user, err := h.db.ValidatePassword(ctx, req.Password)
	if err != nil {
		logging.Warn("Failed login attempt")
		metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		writeJSONError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()

	session, err := h.db.CreateSession(ctx, user.ID)
	if err != nil {
		writeError(w, err, "Failed to create session")
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)
	logging.Info("User logged in, session expires in %v", database.SessionDuration)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AuthResponse{Success: true, ExpiresIn: int(database.SessionDuration.Seconds())})
}

// Logout ends the current session
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.db.DeleteSession(r.Context(), cookie.Value); err != nil {
			logging.Debug("failed to delete session during logout: %v", err)
		}
	}

	clearSessionCookie(w)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AuthResponse{Success: true, Message: "Logged out successfully"})
}

// CheckAuth verifies the current session. With auth disabled every caller
// is authenticated.
func (h *Handlers) CheckAuth(w http.ResponseWriter, r *http.Request) {
	if h.authEnabled {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if _, err := h.db.ValidateSession(r.Context(), cookie.Value); err != nil {
			clearSessionCookie(w)
			writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AuthResponse{Success: true, ExpiresIn: int(database.SessionDuration.Seconds())})
}

// ChangePassword handles password change requests
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PasswordChangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "Invalid request body")
		return
	}

	if _, err := h.db.ValidatePassword(ctx, req.CurrentPassword); err != nil {
		logging.Warn("Failed password change attempt - invalid current password")
		writeJSONError(w, "Current password is incorrect", http.StatusUnauthorized)
		return
	}
	if err := checkPasswordLength(req.NewPassword); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.db.UpdatePassword(ctx, req.NewPassword); err != nil {
		writeError(w, err, "Failed to update password")
		return
	}

	logging.Info("Password changed successfully")
	clearSessionCookie(w)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AuthResponse{Success: true, Message: "Password updated successfully"})
}

// publicPath reports whether a path is reachable without a session.
func publicPath(path string) bool {
	switch path {
	case "/health", "/healthz", "/livez", "/readyz", "/version", "/api/health",
		"/login.html", "/css/login.css", "/js/login.js", "/favicon.ico", "/manifest.json":
		return true
	}
	return strings.HasPrefix(path, "/api/auth/") || strings.HasPrefix(path, "/icons/")
}

// AuthMiddleware protects routes that require authentication. It passes
// everything through when auth is disabled.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.authEnabled || publicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		deny := func() {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
			} else {
				http.Redirect(w, r, "/login.html", http.StatusFound)
			}
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			deny()
			return
		}

		if _, err := h.db.ValidateSession(ctx, cookie.Value); err != nil {
			clearSessionCookie(w)
			deny()
			return
		}

		// Sliding expiration
		if err := h.db.ExtendSession(ctx, cookie.Value); err != nil {
			logging.Debug("Failed to extend session: %v", err)
		} else {
			setSessionCookie(w, cookie.Value, time.Now().Add(database.SessionDuration))
		}

		next.ServeHTTP(w, r)
	})
}
