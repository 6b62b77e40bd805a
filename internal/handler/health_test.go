package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/config"
	"github.com/vendorrs/backend/internal/server"
)

func TestCheckHealthResponseShape(t *testing.T) {
	h := NewHealthHandler(&server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := h.CheckHealth(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CheckHealth returned %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	var success bool
	if err := json.Unmarshal(body["success"], &success); err != nil || !success {
		t.Errorf("expected success true, got %s", body["success"])
	}
	var message string
	if err := json.Unmarshal(body["message"], &message); err != nil || message != "Server is healthy" {
		t.Errorf("expected healthy message, got %s", body["message"])
	}

	// The timestamp sits at the top level, beside success and message,
	// not nested under data.
	if _, ok := body["timestamp"]; !ok {
		t.Error("expected a top-level timestamp field")
	}

	var data struct {
		Environment string         `json:"environment"`
		Checks      map[string]any `json:"checks"`
		Timestamp   *string        `json:"timestamp"`
	}
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if data.Environment != "test" {
		t.Errorf("expected environment %q, got %q", "test", data.Environment)
	}
	if data.Timestamp != nil {
		t.Error("timestamp must not appear under data")
	}
}
