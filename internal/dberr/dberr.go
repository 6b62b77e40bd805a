// Package dberr converts MongoDB driver errors into application HTTP
// errors.
//
// Repositories return driver errors unmodified; the global error
// handler funnels anything that is not already an *errs.HTTPError
// through HandleError so clients get a clean envelope instead of
// driver internals:
//
//   - no matching document   -> 404 Not Found
//   - unique index violation -> 400 "A record with this <field> already exists"
//   - anything else          -> 500 Internal Server Error
package dberr

import (
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vendorrs/backend/internal/errs"
)

// dupKeyIndexRe extracts the index name from a duplicate-key write
// error message, e.g. `... index: email_1 dup key: { email: "a@b.com" }`.
var dupKeyIndexRe = regexp.MustCompile(`index: (\S+?)(?:_\d+)? dup key`)

// IsNotFound reports whether err means "no matching document".
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// HandleError maps a database error to an *errs.HTTPError.
//
// Errors that are already *errs.HTTPError pass through unchanged so
// services can return precise errors without double wrapping.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case IsNotFound(err):
		return errs.NewNotFoundError("Resource not found")

	case IsDuplicateKey(err):
		return errs.NewBadRequestError(duplicateKeyMessage(err), nil)

	default:
		return errs.NewInternalServerError()
	}
}

// duplicateKeyMessage builds a user-facing message from a duplicate-key
// error, naming the violated field when it can be recovered from the
// index name.
func duplicateKeyMessage(err error) string {
	field := extractDuplicateField(err)
	if field == "" {
		return "A record with this identifier already exists"
	}
	return "A record with this " + humanizeField(field) + " already exists"
}

// extractDuplicateField digs the field name out of the driver's write
// error message. Index names follow the "<field>_<direction>" naming
// convention, so "email_1" yields "email". Returns "" when the message
// does not match.
func extractDuplicateField(err error) string {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if m := dupKeyIndexRe.FindStringSubmatch(we.Message); m != nil {
				return m[1]
			}
		}
	}

	// CommandError and bulk write shapes carry the same message text.
	if m := dupKeyIndexRe.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return ""
}

// humanizeField converts a bson field name into display text:
// "businessName" -> "Business Name", "pan_number" -> "Pan Number".
func humanizeField(field string) string {
	// Split camelCase into separate words before title-casing.
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	spaced := strings.ReplaceAll(b.String(), "_", " ")

	return cases.Title(language.English).String(strings.ToLower(spaced))
}
