package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/ratelimit"
	"github.com/vendorrs/backend/internal/server"
)

// routeClass groups the endpoints sharing one rate-limit budget. Each
// class owns an independent fixed-window store: exhausting the auth
// budget leaves the general budget untouched.
type routeClass struct {
	name    string
	store   *ratelimit.Store
	message string

	// skipSuccessful excludes successful requests from the count
	// (auth routes: only failed attempts burn budget).
	skipSuccessful bool
}

// RateLimitMiddleware enforces the per-route-class limits. Counters
// are keyed by client address and live in memory; they reset on
// restart.
type RateLimitMiddleware struct {
	server        *server.Server
	general       *routeClass
	auth          *routeClass
	passwordReset *routeClass
	orderCreation *routeClass
}

// NewRateLimitMiddleware constructs the middleware with the four route
// classes:
//
//	general API     100 requests / 15 min
//	auth routes       5 requests / 15 min (successes excluded)
//	password reset    3 requests / 60 min
//	order creation   20 requests / 60 min
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
		general: &routeClass{
			name:    "general",
			store:   ratelimit.NewStore(15*time.Minute, 100),
			message: "Too many requests from this IP, please try again after 15 minutes",
		},
		auth: &routeClass{
			name:           "auth",
			store:          ratelimit.NewStore(15*time.Minute, 5),
			message:        "Too many login attempts from this IP, please try again after 15 minutes",
			skipSuccessful: true,
		},
		passwordReset: &routeClass{
			name:    "password_reset",
			store:   ratelimit.NewStore(60*time.Minute, 3),
			message: "Too many password reset attempts, please try again after an hour",
		},
		orderCreation: &routeClass{
			name:    "order_creation",
			store:   ratelimit.NewStore(60*time.Minute, 20),
			message: "Too many orders created, please try again later",
		},
	}
}

// General limits all API routes.
func (r *RateLimitMiddleware) General() echo.MiddlewareFunc {
	return r.limit(r.general)
}

// Auth limits login/registration attempts. Successful attempts are
// excluded from the count.
func (r *RateLimitMiddleware) Auth() echo.MiddlewareFunc {
	return r.limit(r.auth)
}

// PasswordReset limits the password-reset endpoints.
func (r *RateLimitMiddleware) PasswordReset() echo.MiddlewareFunc {
	return r.limit(r.passwordReset)
}

// OrderCreation limits order submission.
func (r *RateLimitMiddleware) OrderCreation() echo.MiddlewareFunc {
	return r.limit(r.orderCreation)
}

// limit builds the echo middleware for one route class.
//
// Admission happens before the handler: a rejected request returns 429
// with the class message and never reaches later stages. For
// skip-successful classes, an admitted request that completes without
// error and below status 400 is un-counted afterwards.
func (r *RateLimitMiddleware) limit(class *routeClass) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			res := class.store.Allow(key)

			setRateLimitHeaders(c, res)

			if !res.Allowed {
				GetLogger(c).Warn().
					Str("rate_limit_class", class.name).
					Str("client", key).
					Msg("rate limit exceeded")

				return errs.NewTooManyRequestsError(class.message)
			}

			err := next(c)

			if class.skipSuccessful && err == nil && c.Response().Status < 400 {
				class.store.Decrement(key)
			}

			return err
		}
	}
}

// setRateLimitHeaders exposes the remaining budget on the draft
// standard RateLimit-* response headers.
func setRateLimitHeaders(c echo.Context, res ratelimit.Result) {
	h := c.Response().Header()
	h.Set("RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("RateLimit-Reset", strconv.Itoa(int(time.Until(res.Reset).Seconds())))
}
