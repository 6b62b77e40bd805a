package validation

import (
	"regexp"
	"strings"
)

// objectIDRegex matches the database's native identifier format:
// exactly 24 hexadecimal characters.
var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidObjectID checks whether a string matches the ObjectID format.
//
// This validates format only; it does not prove the document exists.
func IsValidObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}

// Password character class patterns. The special-character set is fixed
// and part of the API contract, so it is spelled out rather than using
// a general punctuation class.
var (
	passwordUpperRegex   = regexp.MustCompile(`[A-Z]`)
	passwordLowerRegex   = regexp.MustCompile(`[a-z]`)
	passwordDigitRegex   = regexp.MustCompile(`[0-9]`)
	passwordSpecialRegex = regexp.MustCompile(`[@$!%*?&]`)
)

// PasswordStrength evaluates the password policy and returns one error
// per missing class, so a weak password reports everything wrong with
// it at once:
//
//   - at least 8 characters
//   - at least one uppercase letter
//   - at least one lowercase letter
//   - at least one number
//   - at least one special character from @$!%*?&
//
// The returned slice is empty when the password passes.
func PasswordStrength(field, password string) CustomValidationErrors {
	var out CustomValidationErrors

	add := func(message string) {
		out = append(out, CustomValidationError{
			Field:   field,
			Message: message,
		})
	}

	if len(password) < 8 {
		add("Password must be at least 8 characters long")
	}
	if !passwordUpperRegex.MatchString(password) {
		add("Password must contain at least one uppercase letter")
	}
	if !passwordLowerRegex.MatchString(password) {
		add("Password must contain at least one lowercase letter")
	}
	if !passwordDigitRegex.MatchString(password) {
		add("Password must contain at least one number")
	}
	if !passwordSpecialRegex.MatchString(password) {
		add("Password must contain at least one special character (@$!%*?&)")
	}

	return out
}

// FieldsEqual implements cross-field equality (confirmPassword must
// equal password). It runs after transforms, so both sides are compared
// in their normalized form.
func FieldsEqual(field, a, b, message string) CustomValidationErrors {
	if a == b {
		return nil
	}
	return CustomValidationErrors{{Field: field, Message: message}}
}

// TrimLower is the canonical email transform: trim surrounding
// whitespace and case-fold to lowercase. Idempotent.
func TrimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
