package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/server"
	"github.com/vendorrs/backend/internal/validation"
)

func testHandler() Handler {
	return NewHandler(&server.Server{})
}

// postJSON runs the given echo handler against a JSON POST body and
// returns the recorder plus the chain error.
func postJSON(t *testing.T, h echo.HandlerFunc, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, h(c)
}

// requestWithParam runs the handler against a request carrying one
// path param and an optional JSON body.
func requestWithParam(t *testing.T, h echo.HandlerFunc, method, name, value, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(name)
	c.SetParamValues(value)

	return rec, h(c)
}

// validationErrors asserts err is a 400 validation error and returns
// its field errors.
func validationErrors(t *testing.T, err error) []errs.FieldError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d (%q)", httpErr.Status, httpErr.Message)
	}
	if httpErr.Message != "Validation failed" {
		t.Fatalf("expected message %q, got %q", "Validation failed", httpErr.Message)
	}
	if len(httpErr.Errors) == 0 {
		t.Fatal("expected a non-empty error list")
	}
	return httpErr.Errors
}

// fieldMessage returns the message reported for a field, or "" when the
// field is absent from the list.
func fieldMessage(fieldErrors []errs.FieldError, field string) string {
	for _, fe := range fieldErrors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func expectFieldMessage(t *testing.T, fieldErrors []errs.FieldError, field, want string) {
	t.Helper()
	if got := fieldMessage(fieldErrors, field); got != want {
		t.Errorf("field %q: got message %q, want %q", field, got, want)
	}
}

type echoRequest struct {
	Value string `json:"value" validate:"required"`
}

func (r *echoRequest) Validate() error {
	return validation.Struct(r)
}

func TestHandleWrapsResultInEnvelope(t *testing.T) {
	h := Handle(testHandler(), func(c echo.Context, req *echoRequest) (map[string]string, error) {
		return map[string]string{"echo": req.Value}, nil
	}, http.StatusCreated, "Created")

	rec, err := postJSON(t, h, `{"value":"hello"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var env errs.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if !env.Success {
		t.Error("expected success=true")
	}
	if env.Message != "Created" {
		t.Errorf("expected message %q, got %q", "Created", env.Message)
	}
	if env.Data == nil {
		t.Error("expected data to be present")
	}
}

func TestHandleOmitsNilData(t *testing.T) {
	h := Handle(testHandler(), func(c echo.Context, req *echoRequest) (any, error) {
		return nil, nil
	}, http.StatusOK, "Done")

	rec, err := postJSON(t, h, `{"value":"hello"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["data"]; ok {
		t.Error("expected data key to be omitted for nil results")
	}
	if _, ok := raw["errors"]; ok {
		t.Error("expected errors key to be omitted on success")
	}
}

func TestHandleSkipsEndpointOnValidationFailure(t *testing.T) {
	invoked := false
	h := Handle(testHandler(), func(c echo.Context, req *echoRequest) (any, error) {
		invoked = true
		return nil, nil
	}, http.StatusOK, "Done")

	_, err := postJSON(t, h, `{}`)
	validationErrors(t, err)
	if invoked {
		t.Fatal("endpoint must not run on invalid input")
	}
}

func TestHandleRejectsMalformedBody(t *testing.T) {
	h := Handle(testHandler(), func(c echo.Context, req *echoRequest) (any, error) {
		t.Fatal("endpoint must not run on a malformed body")
		return nil, nil
	}, http.StatusOK, "Done")

	_, err := postJSON(t, h, `{"value":`)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusBadRequest || httpErr.Message != "Invalid request body" {
		t.Fatalf("got %d %q, want 400 %q", httpErr.Status, httpErr.Message, "Invalid request body")
	}
}

func TestHandlePropagatesEndpointError(t *testing.T) {
	want := errs.NewNotFoundError("Product not found")
	h := Handle(testHandler(), func(c echo.Context, req *echoRequest) (any, error) {
		return nil, want
	}, http.StatusOK, "Done")

	_, err := postJSON(t, h, `{"value":"hello"}`)
	if !errors.Is(err, want) {
		t.Fatalf("expected endpoint error to propagate, got %v", err)
	}
}
