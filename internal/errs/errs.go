// Package errs defines the API error types and the uniform response
// envelope.
//
// Every endpoint, success or failure, answers with the same JSON shape:
//
//	{ "success": bool, "message": string, "data": ..., "errors": [...] }
//
// so clients never have to guess how to parse a response.
//
// - Return consistent response shapes to API clients (JSON).
// - Support field-level validation errors with the rejected value.
// - Provide errors that play nicely with Go's standard errors package.
package errs
