package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// registerChain wires the register request type through the pipeline
// with a stub endpoint, so validation behavior is observable without a
// database.
func registerChain(invoked *bool) echo.HandlerFunc {
	return Handle(testHandler(), func(c echo.Context, req *RegisterRequest) (any, error) {
		if invoked != nil {
			*invoked = true
		}
		return nil, nil
	}, http.StatusCreated, "User registered successfully")
}

const validVendorBody = `{
	"email": "vendor@example.com",
	"password": "Str0ng!pass",
	"role": "vendor",
	"businessName": "Acme Supplies",
	"pan": "ABCDE1234F",
	"phone": "9841000000",
	"province": "Bagmati",
	"district": "Kathmandu"
}`

func TestRegisterValidVendor(t *testing.T) {
	invoked := false
	if _, err := postJSON(t, registerChain(&invoked), validVendorBody); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !invoked {
		t.Fatal("endpoint was not invoked")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	invoked := false
	_, err := postJSON(t, registerChain(&invoked), `{}`)

	fieldErrors := validationErrors(t, err)
	if invoked {
		t.Fatal("endpoint must not run on invalid input")
	}

	expectFieldMessage(t, fieldErrors, "email", "Please provide a valid email address")
	expectFieldMessage(t, fieldErrors, "role", "Role must be either vendor, center, or admin")
	if fieldMessage(fieldErrors, "password") == "" {
		t.Error("expected a password error")
	}
}

func TestRegisterPasswordClassesReportedIndividually(t *testing.T) {
	_, err := postJSON(t, registerChain(nil), `{
		"email": "a@b.com",
		"password": "alllowercase",
		"role": "admin"
	}`)

	fieldErrors := validationErrors(t, err)

	var passwordMessages []string
	for _, fe := range fieldErrors {
		if fe.Field == "password" {
			passwordMessages = append(passwordMessages, fe.Message)
		}
	}

	want := []string{
		"Password must contain at least one uppercase letter",
		"Password must contain at least one number",
		"Password must contain at least one special character (@$!%*?&)",
	}
	if len(passwordMessages) != len(want) {
		t.Fatalf("expected %d password errors, got %d: %v", len(want), len(passwordMessages), passwordMessages)
	}
	for i, msg := range want {
		if passwordMessages[i] != msg {
			t.Errorf("password error %d: got %q, want %q", i, passwordMessages[i], msg)
		}
	}
}

func TestRegisterVendorRequiresVendorFields(t *testing.T) {
	_, err := postJSON(t, registerChain(nil), `{
		"email": "vendor@example.com",
		"password": "Str0ng!pass",
		"role": "vendor"
	}`)

	fieldErrors := validationErrors(t, err)
	expectFieldMessage(t, fieldErrors, "businessName", "Business name is required for vendors")
	expectFieldMessage(t, fieldErrors, "pan", "PAN number is required for vendors")
	expectFieldMessage(t, fieldErrors, "phone", "Phone number is required")
	expectFieldMessage(t, fieldErrors, "province", "Province is required")
	expectFieldMessage(t, fieldErrors, "district", "District is required")
}

func TestRegisterCenterRequiresOnlyCategory(t *testing.T) {
	// A center payload without any vendor fields is valid.
	invoked := false
	if _, err := postJSON(t, registerChain(&invoked), `{
		"email": "center@example.com",
		"password": "Str0ng!pass",
		"role": "center",
		"category": "64adf0a1b2c3d4e5f6a7b8c9"
	}`); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !invoked {
		t.Fatal("endpoint was not invoked")
	}

	// Without category it is rejected.
	_, err := postJSON(t, registerChain(nil), `{
		"email": "center@example.com",
		"password": "Str0ng!pass",
		"role": "center"
	}`)
	fieldErrors := validationErrors(t, err)
	expectFieldMessage(t, fieldErrors, "category", "Category is required for centers")
}

func TestRegisterVendorFieldFormats(t *testing.T) {
	_, err := postJSON(t, registerChain(nil), `{
		"email": "vendor@example.com",
		"password": "Str0ng!pass",
		"role": "vendor",
		"businessName": "Acme Supplies",
		"pan": "bad-pan",
		"phone": "12345",
		"province": "Bagmati",
		"district": "Kathmandu"
	}`)

	fieldErrors := validationErrors(t, err)
	expectFieldMessage(t, fieldErrors, "pan", "Invalid PAN number format")
	expectFieldMessage(t, fieldErrors, "phone", "Phone number must be 10 digits")
}

func TestRegisterBusinessNameLengthCheckedBeforeEscaping(t *testing.T) {
	// 100 raw characters including an ampersand pass the length rule even
	// though escaping grows the stored value past it.
	name := "Smith & Sons " + strings.Repeat("a", 87)

	var captured *RegisterRequest
	h := Handle(testHandler(), func(c echo.Context, req *RegisterRequest) (any, error) {
		captured = req
		return nil, nil
	}, http.StatusCreated, "User registered successfully")

	if _, err := postJSON(t, h, `{
		"email": "vendor@example.com",
		"password": "Str0ng!pass",
		"role": "vendor",
		"businessName": "`+name+`",
		"pan": "ABCDE1234F",
		"phone": "9841000000",
		"province": "Bagmati",
		"district": "Kathmandu"
	}`); err != nil {
		t.Fatalf("expected 100 raw characters to be accepted, got %v", err)
	}
	if want := "Smith &amp; Sons " + strings.Repeat("a", 87); captured.BusinessName != want {
		t.Fatalf("expected business name escaped after validation, got %q", captured.BusinessName)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	var got string
	h := Handle(testHandler(), func(c echo.Context, req *RegisterRequest) (any, error) {
		got = req.Email
		return nil, nil
	}, http.StatusCreated, "User registered successfully")

	if _, err := postJSON(t, h, `{
		"email": "  Admin@Example.COM  ",
		"password": "Str0ng!pass",
		"role": "admin"
	}`); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got != "admin@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}
}

func TestLoginValidation(t *testing.T) {
	h := Handle(testHandler(), func(c echo.Context, req *LoginRequest) (any, error) {
		return nil, nil
	}, http.StatusOK, "Login successful")

	_, err := postJSON(t, h, `{"email":"not-an-email"}`)
	fieldErrors := validationErrors(t, err)
	expectFieldMessage(t, fieldErrors, "email", "Please provide a valid email address")
	expectFieldMessage(t, fieldErrors, "password", "Password is required")
}

func TestResetPasswordMismatch(t *testing.T) {
	h := Handle(testHandler(), func(c echo.Context, req *ResetPasswordRequest) (any, error) {
		return nil, nil
	}, http.StatusOK, "Password reset successful")

	_, err := postJSON(t, h, `{
		"token": "sometoken",
		"password": "Str0ng!pass",
		"confirmPassword": "Different1!"
	}`)
	fieldErrors := validationErrors(t, err)
	expectFieldMessage(t, fieldErrors, "confirmPassword", "Passwords do not match")
}

func TestResetPasswordMissingToken(t *testing.T) {
	h := Handle(testHandler(), func(c echo.Context, req *ResetPasswordRequest) (any, error) {
		return nil, nil
	}, http.StatusOK, "Password reset successful")

	_, err := postJSON(t, h, `{
		"password": "Str0ng!pass",
		"confirmPassword": "Str0ng!pass"
	}`)
	fieldErrors := validationErrors(t, err)
	expectFieldMessage(t, fieldErrors, "token", "Reset token is required")
}
