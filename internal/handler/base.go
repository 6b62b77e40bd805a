package handler

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/server"
	"github.com/vendorrs/backend/internal/validation"
)

// Handler is the base type that holds shared application dependencies.
// Concrete handlers embed it to reach the server container.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct
// only carries a pointer, so copies stay cheap and share the Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound and validated
// request payload and returns the response value or an error.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Handle adapts a typed endpoint into an echo.HandlerFunc.
//
// Per request:
//  1. Allocate a fresh Req and bind + normalize + validate it. On
//     failure the endpoint is never invoked; the validation error goes
//     straight to the global error handler.
//  2. Invoke the endpoint.
//  3. Wrap the result in the success envelope with the endpoint's
//     message and write it with the given status.
//
// Req is the value type; the endpoint receives *Req. Allocating inside
// the closure keeps concurrent requests from sharing a payload struct.
func Handle[Req any, PT interface {
	*Req
	validation.Validatable
}, Res any](
	h Handler,
	endpoint HandlerFunc[PT, Res],
	status int,
	message string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := middleware.GetLogger(c)

		req := PT(new(Req))
		if err := validation.BindAndValidate(c, req); err != nil {
			logger.Warn().
				Err(err).
				Dur("duration", time.Since(start)).
				Msg("request validation failed")
			return err
		}

		result, err := endpoint(c, req)
		if err != nil {
			logger.Warn().
				Err(err).
				Dur("duration", time.Since(start)).
				Msg("handler execution failed")
			return err
		}

		logger.Debug().
			Dur("duration", time.Since(start)).
			Msg("request completed")

		return respond(c, status, message, result)
	}
}

// respond writes the uniform success envelope. Direct handlers (routes
// with no payload to validate) call it themselves.
func respond(c echo.Context, status int, message string, data any) error {
	env := errs.Envelope{
		Success: true,
		Message: message,
	}
	if !isNilValue(data) {
		env.Data = data
	}
	return c.JSON(status, env)
}

// isNilValue reports whether data is nil, including a typed nil pointer
// boxed in an interface. Without this, endpoints returning (*T)(nil)
// would serialize "data": null instead of omitting the key.
func isNilValue(data any) bool {
	if data == nil {
		return true
	}
	switch rv := reflect.ValueOf(data); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
