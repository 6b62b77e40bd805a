// Package middleware contains the HTTP middleware chain: security
// headers, CORS, request IDs, request-scoped logging, the rate
// limiter, the auth guard, and the global error handler that
// normalizes every failure into the response envelope.
package middleware
