// Package validation contains the logic for validating request data.
//
// It uses the validator library to enforce rules (required fields,
// email format, ranges, enumerated sets, ObjectID format) declared in
// struct tags, and extracts every violation into the field-error shape
// the client understands. All rules for a request are evaluated, never
// short-circuited on the first failure, so one response reports every
// problem.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`).
//   - Implement Validate() error that runs validation.Struct(req) plus
//     any rules tags cannot express, joined with errors.Join.
type Validatable interface {
	Validate() error
}

// Normalizer is optionally implemented by payloads that declare input
// transforms (trim whitespace, lowercase). Normalize runs after
// binding and before Validate, so constraint checks and cross-field
// rules see the transformed values. Transforms must be idempotent.
type Normalizer interface {
	Normalize()
}

// Sanitizer is optionally implemented by payloads that encode values
// for storage (HTML-escaping free-text fields). Sanitize runs after
// Validate, so length rules are checked against the raw input: "&"
// expanding to "&amp;" must not push a field over its limit.
type Sanitizer interface {
	Sanitize()
}

// Messager is optionally implemented by payloads that override the
// generic per-tag messages with route-specific wording.
//
// Keys are "<field path>:<tag>" with slice indexes stripped, e.g.
// "items.quantity:max", falling back to "<field path>:<tag>" without a
// match meaning the generic message is used. Field paths use JSON
// names.
type Messager interface {
	Messages() Messages
}

// Messages maps "<field>:<tag>" to a route-specific error message.
type Messages map[string]string

// CustomValidationError represents a single validation issue for rules
// that cannot be expressed via validator tags (password character
// classes, cross-field equality).
type CustomValidationError struct {
	Field   string
	Message string
	Value   any
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error, so it can be joined with validator output.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// validate is the shared validator instance. It is configured once at
// init and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so error paths match the wire
	// format ("businessName", not "BusinessName").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// Path-param fields carry a param tag instead of json.
			if p := fld.Tag.Get("param"); p != "" {
				return p
			}
			return fld.Name
		}
		return name
	})

	// objectid matches the database's native 24-hex-character ID format.
	if err := v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return IsValidObjectID(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Struct runs struct-tag validation on payload. The returned error is
// validator.ValidationErrors listing every failing field, or nil.
func Struct(payload any) error {
	return validate.Struct(payload)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from body and path params.
//  2. payload.Normalize() applies declared transforms, if any.
//  3. payload.Validate() evaluates every rule.
//  4. payload.Sanitize() encodes values for storage, if declared.
//
// Returns *errs.HTTPError (400) carrying the aggregated field errors
// when validation fails, so the handler is never invoked with bad
// input.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		// Malformed JSON or a type mismatch during binding. The bind
		// error text is driver-ish; clients get a stable message.
		return errs.NewBadRequestError("Invalid request body", nil)
	}

	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}

	if err := payload.Validate(); err != nil {
		var msgs Messages
		if m, ok := payload.(Messager); ok {
			msgs = m.Messages()
		}
		return errs.NewValidationError(ExtractFieldErrors(err, msgs))
	}

	if s, ok := payload.(Sanitizer); ok {
		s.Sanitize()
	}

	return nil
}

// indexRe strips concrete slice indexes for message lookup, so
// "items[2].quantity" and "items[0].quantity" share one override key.
var indexRe = regexp.MustCompile(`\[\d+\]`)

// ExtractFieldErrors converts a validation error into ordered field
// errors. It understands validator.ValidationErrors,
// CustomValidationErrors, and errors joined from both.
func ExtractFieldErrors(err error, msgs Messages) []errs.FieldError {
	var fieldErrors []errs.FieldError

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		// errors.Join output: flatten each joined error in order.
		for _, sub := range e.Unwrap() {
			fieldErrors = append(fieldErrors, ExtractFieldErrors(sub, msgs)...)
		}

	case validator.ValidationErrors:
		for _, fe := range e {
			fieldErrors = append(fieldErrors, convertTagError(fe, msgs))
		}

	case CustomValidationErrors:
		for _, ce := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:   ce.Field,
				Message: ce.Message,
				Value:   ce.Value,
			})
		}

	default:
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:   "",
			Message: err.Error(),
		})
	}

	return fieldErrors
}

// convertTagError maps one validator tag failure to a FieldError,
// preferring a route-specific message override when one exists.
func convertTagError(fe validator.FieldError, msgs Messages) errs.FieldError {
	field := fieldPath(fe)

	msg := lookupMessage(msgs, field, fe.Tag())
	if msg == "" {
		msg = genericMessage(fe)
	}

	out := errs.FieldError{
		Field:   field,
		Message: msg,
	}

	// Echo the rejected value back, except when it is empty: required
	// failures would otherwise report "value": "" (or null, for
	// pointer fields that were omitted entirely).
	if v := fe.Value(); v != nil && v != "" {
		if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || !rv.IsNil() {
			out.Value = v
		}
	}

	return out
}

// fieldPath renders the full field path with concrete slice indexes,
// minus the root struct name: "CreateOrderRequest.items[0].productId"
// becomes "items[0].productId".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func lookupMessage(msgs Messages, field, tag string) string {
	if msgs == nil {
		return ""
	}
	key := indexRe.ReplaceAllString(field, "")
	if msg, ok := msgs[key+":"+tag]; ok {
		return msg
	}
	return ""
}

// genericMessage builds a human message from the failing tag. Routes
// needing the original API's exact wording override via Messages.
func genericMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "required_if":
		// Param is "<Field> <value>", e.g. "Role vendor".
		parts := strings.Fields(fe.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("is required when %s is %s", strings.ToLower(parts[0]), parts[1])
		}
		return "is required"

	case "min":
		// min means length for strings, value for numbers.
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "lte":
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	case "objectid":
		return "must be a valid ID"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Join merges tag validation output with custom rule failures into one
// error, dropping nils and empty custom error lists. Returns nil when
// everything passed.
func Join(errsList ...error) error {
	var filtered []error
	for _, e := range errsList {
		if e == nil {
			continue
		}
		// An empty CustomValidationErrors slice is a non-nil error
		// value but carries no failures.
		if ce, ok := e.(CustomValidationErrors); ok && len(ce) == 0 {
			continue
		}
		filtered = append(filtered, e)
	}
	return errors.Join(filtered...)
}
