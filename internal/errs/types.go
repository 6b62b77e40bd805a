package errs

// Envelope is the uniform response body returned by every endpoint.
//
// Success responses carry Data; failure responses carry Errors (for
// validation failures) or just a message. Data and Errors are both
// omitted when empty so the wire shape stays minimal.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`

	// Stack carries a diagnostic trace on unexpected failures. It is
	// only populated outside production.
	Stack string `json:"stack,omitempty"`
}

// FieldError represents a single field-level validation error.
//
// Example:
//
//	{ "field": "items[0].quantity", "message": "Quantity must be between 1 and 10,000", "value": 10001 }
type FieldError struct {
	// Field is the field path the error relates to. Elements of slices
	// use the concrete index, e.g. "items[2].productId".
	Field string `json:"field"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Value is the rejected input value, echoed back for debugging.
	Value any `json:"value,omitempty"`
}

// HTTPError is the main error type carried through handlers and
// middleware up to the global error handler, which serializes it into
// an Envelope.
//
// Fields:
//   - Status: HTTP status code to respond with.
//   - Message: human-friendly message placed in the envelope.
//   - Errors: per-field validation errors, when applicable.
type HTTPError struct {
	Status  int
	Message string
	Errors  []FieldError
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError, so
// errors.Is(err, &HTTPError{}) can be used as a type check. It does not
// compare Status or Message.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Envelope converts the error into the wire shape.
func (e *HTTPError) Envelope() Envelope {
	return Envelope{
		Success: false,
		Message: e.Message,
		Errors:  e.Errors,
	}
}
