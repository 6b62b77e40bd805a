// Package handler is the HTTP entry layer. It binds and validates
// request payloads through the validation package, calls the service
// layer, and wraps results in the uniform response envelope.
package handler
