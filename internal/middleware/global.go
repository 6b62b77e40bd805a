package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/vendorrs/backend/internal/dberr"
	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/server"
)

// GlobalMiddlewares holds the middleware applied to every route.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

// CORS restricts cross-origin requests to the configured origins.
func (g *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: g.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			RequestIDHeader,
		},
		AllowCredentials: true,
	})
}

// Secure sets the standard hardening headers (X-Content-Type-Options,
// X-Frame-Options, XSS protection).
func (g *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return echomw.Secure()
}

// BodyLimit caps request body size so oversized payloads are rejected
// before JSON decoding.
func (g *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return echomw.BodyLimit(g.server.Config.Server.BodyLimit)
}

// RequestLogger emits one structured log line per request.
//
// The status of failed requests is derived from the returned error
// rather than the response object, because logging runs before the
// global error handler has written the response.
func (g *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log := GetLogger(c)

			status := v.Status
			if v.Error != nil {
				status = statusFromError(v.Error)
			}

			event := log.Info()
			if status >= 500 {
				event = log.Error()
			} else if status >= 400 {
				event = log.Warn()
			}

			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("user_agent", v.UserAgent)

			if v.Error != nil {
				event.Err(v.Error)
			}

			event.Msg("request")
			return nil
		},
	})
}

// Recover converts panics into 500 responses instead of crashing the
// process. The stack is logged; outside production it also reaches the
// client through the error handler.
func (g *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					GetLogger(c).Error().
						Interface("panic", r).
						Bytes("stack", stack).
						Msg("panic recovered")

					err = errs.NewInternalServerError()
					if !g.server.Config.Primary.IsProduction() {
						c.Set(stackKey, string(stack))
					}
				}
			}()
			return next(c)
		}
	}
}

const stackKey = "error_stack"

// GlobalErrorHandler serializes every error returned from a handler or
// middleware into the uniform envelope. It is installed as echo's
// HTTPErrorHandler, so handlers only ever return errors and never write
// failure responses themselves.
func (g *GlobalMiddlewares) GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := g.toHTTPError(err, c)

		env := httpErr.Envelope()
		if httpErr.Status == http.StatusInternalServerError && !g.server.Config.Primary.IsProduction() {
			if stack, ok := c.Get(stackKey).(string); ok {
				env.Stack = stack
			}
		}

		if writeErr := c.JSON(httpErr.Status, env); writeErr != nil {
			GetLogger(c).Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}

// toHTTPError normalizes the three error shapes that can reach the
// handler: our own *errs.HTTPError, echo's *HTTPError (unmatched
// routes, body-limit rejections), and raw database/internal errors.
func (g *GlobalMiddlewares) toHTTPError(err error, c echo.Context) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return errs.NewNotFoundError("Route not found")
		case http.StatusMethodNotAllowed:
			return errs.NewNotFoundError("Route not found")
		case http.StatusRequestEntityTooLarge:
			return errs.NewBadRequestError("Request body too large", nil)
		default:
			msg := http.StatusText(echoErr.Code)
			if s, ok := echoErr.Message.(string); ok {
				msg = s
			}
			return &errs.HTTPError{Status: echoErr.Code, Message: msg}
		}
	}

	var mapped *errs.HTTPError
	if !errors.As(dberr.HandleError(err), &mapped) {
		mapped = errs.NewInternalServerError()
	}
	if mapped.Status == http.StatusInternalServerError {
		GetLogger(c).Error().Err(err).Msg("unhandled error")
	}
	return mapped
}

// statusFromError mirrors toHTTPError's status derivation for the
// request logger, without allocating envelopes.
func statusFromError(err error) int {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	return http.StatusInternalServerError
}
