package validation

import (
	"testing"

	"github.com/vendorrs/backend/internal/errs"
)

type orderPayload struct {
	CenterID string      `json:"centerId" validate:"required,objectid"`
	Items    []orderItem `json:"items" validate:"required,min=1,dive"`
}

type orderItem struct {
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=10000"`
}

func findField(fieldErrors []errs.FieldError, field string) *errs.FieldError {
	for i := range fieldErrors {
		if fieldErrors[i].Field == field {
			return &fieldErrors[i]
		}
	}
	return nil
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(&orderPayload{})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	fieldErrors := ExtractFieldErrors(err, nil)
	if findField(fieldErrors, "centerId") == nil {
		t.Errorf("expected an error for field %q, got %+v", "centerId", fieldErrors)
	}
	if findField(fieldErrors, "CenterID") != nil {
		t.Error("struct field names must not leak into error paths")
	}
}

func TestFieldPathCarriesSliceIndexes(t *testing.T) {
	payload := &orderPayload{
		CenterID: "64adf0a1b2c3d4e5f6a7b8c9",
		Items: []orderItem{
			{ProductID: "64adf0a1b2c3d4e5f6a7b8ca", Quantity: 1},
			{ProductID: "bogus", Quantity: 20000},
		},
	}

	fieldErrors := ExtractFieldErrors(Struct(payload), nil)
	if findField(fieldErrors, "items[1].productId") == nil {
		t.Errorf("expected an indexed path for the bad product id, got %+v", fieldErrors)
	}
	if findField(fieldErrors, "items[1].quantity") == nil {
		t.Errorf("expected an indexed path for the bad quantity, got %+v", fieldErrors)
	}
	if findField(fieldErrors, "items[0].productId") != nil {
		t.Error("valid items must not be reported")
	}
}

func TestMessageOverridesIgnoreIndexes(t *testing.T) {
	payload := &orderPayload{
		CenterID: "64adf0a1b2c3d4e5f6a7b8c9",
		Items: []orderItem{
			{ProductID: "64adf0a1b2c3d4e5f6a7b8ca", Quantity: 20000},
		},
	}
	msgs := Messages{
		"items.quantity:lte": "Quantity must be between 1 and 10,000",
	}

	fieldErrors := ExtractFieldErrors(Struct(payload), msgs)
	fe := findField(fieldErrors, "items[0].quantity")
	if fe == nil {
		t.Fatalf("expected a quantity error, got %+v", fieldErrors)
	}
	if fe.Message != "Quantity must be between 1 and 10,000" {
		t.Errorf("override not applied: got %q", fe.Message)
	}
}

func TestExtractOmitsEmptyRejectedValue(t *testing.T) {
	fieldErrors := ExtractFieldErrors(Struct(&orderPayload{}), nil)
	fe := findField(fieldErrors, "centerId")
	if fe == nil {
		t.Fatal("expected a centerId error")
	}
	if fe.Value != nil {
		t.Errorf("required failures must not echo an empty value, got %v", fe.Value)
	}
}

func TestExtractEchoesRejectedValue(t *testing.T) {
	payload := &orderPayload{
		CenterID: "bogus",
		Items:    []orderItem{{ProductID: "64adf0a1b2c3d4e5f6a7b8ca", Quantity: 1}},
	}

	fieldErrors := ExtractFieldErrors(Struct(payload), nil)
	fe := findField(fieldErrors, "centerId")
	if fe == nil {
		t.Fatal("expected a centerId error")
	}
	if fe.Value != "bogus" {
		t.Errorf("expected rejected value to be echoed, got %v", fe.Value)
	}
}

func TestJoinDropsNilsAndEmptyCustomErrors(t *testing.T) {
	if err := Join(nil, CustomValidationErrors{}, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	custom := CustomValidationErrors{{Field: "password", Message: "too weak"}}
	err := Join(nil, custom)
	if err == nil {
		t.Fatal("expected an error")
	}

	fieldErrors := ExtractFieldErrors(err, nil)
	if len(fieldErrors) != 1 || fieldErrors[0].Field != "password" {
		t.Fatalf("unexpected field errors: %+v", fieldErrors)
	}
}

func TestJoinMergesTagAndCustomErrors(t *testing.T) {
	tagErr := Struct(&orderPayload{})
	custom := CustomValidationErrors{{Field: "password", Message: "too weak"}}

	fieldErrors := ExtractFieldErrors(Join(tagErr, custom), nil)
	if findField(fieldErrors, "centerId") == nil {
		t.Error("tag errors missing after join")
	}
	if findField(fieldErrors, "password") == nil {
		t.Error("custom errors missing after join")
	}
}

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "strong",
			password: "Str0ng!pass",
			want:     nil,
		},
		{
			name:     "empty",
			password: "",
			want: []string{
				"Password must be at least 8 characters long",
				"Password must contain at least one uppercase letter",
				"Password must contain at least one lowercase letter",
				"Password must contain at least one number",
				"Password must contain at least one special character (@$!%*?&)",
			},
		},
		{
			name:     "missing uppercase",
			password: "weakpass1!",
			want:     []string{"Password must contain at least one uppercase letter"},
		},
		{
			name:     "missing special",
			password: "Weakpass1",
			want:     []string{"Password must contain at least one special character (@$!%*?&)"},
		},
		{
			name:     "special outside allowed set",
			password: "Weakpass1#",
			want:     []string{"Password must contain at least one special character (@$!%*?&)"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PasswordStrength("password", tc.password)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d errors, want %d: %+v", len(got), len(tc.want), got)
			}
			for i, want := range tc.want {
				if got[i].Message != want {
					t.Errorf("error %d: got %q, want %q", i, got[i].Message, want)
				}
				if got[i].Field != "password" {
					t.Errorf("error %d: field %q, want %q", i, got[i].Field, "password")
				}
			}
		})
	}
}

func TestFieldsEqual(t *testing.T) {
	if errs := FieldsEqual("confirmPassword", "a", "a", "Passwords do not match"); len(errs) != 0 {
		t.Fatalf("expected no errors for equal values, got %+v", errs)
	}

	errsList := FieldsEqual("confirmPassword", "a", "b", "Passwords do not match")
	if len(errsList) != 1 || errsList[0].Message != "Passwords do not match" {
		t.Fatalf("unexpected errors: %+v", errsList)
	}
}

func TestIsValidObjectID(t *testing.T) {
	valid := []string{"64adf0a1b2c3d4e5f6a7b8c9", "ABCDEF0123456789abcdef01"}
	for _, id := range valid {
		if !IsValidObjectID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}

	invalid := []string{"", "short", "64adf0a1b2c3d4e5f6a7b8c", "64adf0a1b2c3d4e5f6a7b8c9a", "zzzzzzzzzzzzzzzzzzzzzzzz"}
	for _, id := range invalid {
		if IsValidObjectID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestTrimLower(t *testing.T) {
	if got := TrimLower("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("got %q", got)
	}
}
