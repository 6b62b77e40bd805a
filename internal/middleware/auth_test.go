package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vendorrs/backend/internal/config"
	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/lib/token"
	"github.com/vendorrs/backend/internal/server"
)

const testSecret = "test-secret-key"

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Auth: config.AuthConfig{
				SecretKey:     testSecret,
				TokenTTLHours: 1,
			},
		},
		Logger: &logger,
	}
}

// invoke runs an echo handler chain against a request carrying the
// given Authorization header and returns the echo context plus the
// chain error.
func invoke(t *testing.T, chain echo.HandlerFunc, authHeader string) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return c, chain(c)
}

func requireStatus(t *testing.T, err error, want int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Status != want {
		t.Fatalf("expected status %d, got %d (%q)", want, httpErr.Status, httpErr.Message)
	}
	return httpErr
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	tok, err := token.Sign(testSecret, "user-123", "vendor", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	invoked := false
	chain := auth.RequireAuth(func(c echo.Context) error {
		invoked = true
		if got := GetUserID(c); got != "user-123" {
			t.Errorf("expected user id %q, got %q", "user-123", got)
		}
		if got := GetUserRole(c); got != "vendor" {
			t.Errorf("expected role %q, got %q", "vendor", got)
		}
		return nil
	})

	if _, err := invoke(t, chain, "Bearer "+tok); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !invoked {
		t.Fatal("handler was not invoked")
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	chain := auth.RequireAuth(func(c echo.Context) error {
		t.Fatal("handler must not run without a credential")
		return nil
	})

	_, err := invoke(t, chain, "")
	httpErr := requireStatus(t, err, http.StatusUnauthorized)
	if httpErr.Message != "Unauthorized" {
		t.Fatalf("expected message %q, got %q", "Unauthorized", httpErr.Message)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	chain := auth.RequireAuth(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	for _, header := range []string{"Basic abc", "Bearer", "Bearer   ", "token-without-scheme"} {
		_, err := invoke(t, chain, header)
		requireStatus(t, err, http.StatusUnauthorized)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	tok, err := token.Sign(testSecret, "user-123", "vendor", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	chain := auth.RequireAuth(func(c echo.Context) error {
		t.Fatal("handler must not run with an expired credential")
		return nil
	})

	_, err = invoke(t, chain, "Bearer "+tok)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	tok, err := token.Sign("another-secret", "user-123", "vendor", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	chain := auth.RequireAuth(func(c echo.Context) error {
		t.Fatal("handler must not run with a foreign credential")
		return nil
	})

	_, err = invoke(t, chain, "Bearer "+tok)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestRequireAuthCaseInsensitiveScheme(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	tok, err := token.Sign(testSecret, "user-123", "vendor", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	chain := auth.RequireAuth(func(c echo.Context) error {
		return nil
	})

	if _, err := invoke(t, chain, "bearer "+tok); err != nil {
		t.Fatalf("lowercase scheme should be accepted, got %v", err)
	}
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	tok, err := token.Sign(testSecret, "user-123", "center", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	invoked := false
	chain := auth.RequireAuth(auth.RequireRole("center", "admin")(func(c echo.Context) error {
		invoked = true
		return nil
	}))

	if _, err := invoke(t, chain, "Bearer "+tok); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !invoked {
		t.Fatal("handler was not invoked")
	}
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	auth := NewAuthMiddleware(newTestServer())

	tok, err := token.Sign(testSecret, "user-123", "vendor", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	chain := auth.RequireAuth(auth.RequireRole("center", "admin")(func(c echo.Context) error {
		t.Fatal("handler must not run for a disallowed role")
		return nil
	}))

	_, err = invoke(t, chain, "Bearer "+tok)
	httpErr := requireStatus(t, err, http.StatusForbidden)
	if httpErr.Message != "Forbidden" {
		t.Fatalf("expected message %q, got %q", "Forbidden", httpErr.Message)
	}
}
