package handlers

import (
	"net/http"
	"testing"
)

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	env := setupTestHandlers(t, nil, false)

	rec := env.do(t, http.MethodGet, "/api/servers", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with auth disabled", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/auth/check", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("check status = %d, want 200 with auth disabled", rec.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	env := setupTestHandlers(t, nil, true)

	rec := env.do(t, http.MethodGet, "/api/servers", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/index.html", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login.html" {
		t.Errorf("page request should redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = env.do(t, http.MethodGet, "/api/auth/setup-required", nil)
	var setup map[string]bool
	decodeBody(t, rec, &setup)
	if !setup["needsSetup"] || !setup["authEnabled"] {
		t.Errorf("unexpected setup state %v", setup)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/setup", PasswordRequest{Password: "abc"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short password status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/setup", PasswordRequest{Password: "hunter22"})
	if rec.Code != http.StatusOK {
		t.Fatalf("setup status = %d, body %s", rec.Code, rec.Body)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/setup", PasswordRequest{Password: "another1"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("second setup status = %d, want 403", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", PasswordRequest{Password: "wrong-password"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", PasswordRequest{Password: "hunter22"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	cookie := sessionCookie(t, rec.Result())

	rec = env.do(t, http.MethodGet, "/api/servers", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/auth/check", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Errorf("check status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Errorf("logout status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/servers", nil, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("after logout status = %d, want 401", rec.Code)
	}
}

func TestPublicPathsWithAuth(t *testing.T) {
	env := setupTestHandlers(t, nil, true)

	for _, path := range []string{"/healthz", "/livez", "/version", "/api/health"} {
		rec := env.do(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestChangePassword(t *testing.T) {
	env := setupTestHandlers(t, nil, true)

	env.do(t, http.MethodPost, "/api/auth/setup", PasswordRequest{Password: "hunter22"})

	rec := env.do(t, http.MethodPost, "/api/auth/password", PasswordChangeRequest{
		CurrentPassword: "nope", NewPassword: "newpass1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong current password status = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/password", PasswordChangeRequest{
		CurrentPassword: "hunter22", NewPassword: "newpass1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("change status = %d, body %s", rec.Code, rec.Body)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", PasswordRequest{Password: "newpass1"})
	if rec.Code != http.StatusOK {
		t.Errorf("login with new password status = %d", rec.Code)
	}
}
