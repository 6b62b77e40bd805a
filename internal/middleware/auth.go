package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/lib/token"
	"github.com/vendorrs/backend/internal/server"
)

// AuthMiddleware holds the app server so the guard can read the
// signing secret and log through the shared logger.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth is the authentication guard for private routes.
//
// Behavior:
//  1. Extract the bearer credential from the Authorization header.
//  2. Verify signature and expiry against the process-wide secret.
//  3. On success, attach {id, role} to the request context — the only
//     place identity is ever set — and continue the chain.
//  4. On any failure (missing header, malformed, expired, tampered),
//     short-circuit with 401 before the handler runs.
//
// The check is synchronous and side-effect-free except for the context
// mutation.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		raw, ok := bearerToken(c)
		if !ok {
			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("missing bearer credential")

			return errs.NewUnauthorizedError("Unauthorized")
		}

		claims, err := token.Parse(auth.server.Config.Auth.SecretKey, raw)
		if err != nil {
			// Expired, tampered, and malformed all reject identically;
			// the reason is only interesting in logs.
			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Err(err).
				Dur("duration", time.Since(start)).
				Msg("bearer credential rejected")

			return errs.NewUnauthorizedError("Unauthorized")
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Str("user_id", claims.UserID).
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// RequireRole returns a middleware enforcing that the verified role is
// one of the allowed set. It must run after RequireAuth. A valid
// credential with the wrong role gets 403, not 401.
func (auth *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := GetUserRole(c)

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			GetLogger(c).Warn().
				Str("function", "RequireRole").
				Str("user_role", role).
				Strs("allowed", roles).
				Msg("role not permitted on this route")

			return errs.NewForbiddenError("Forbidden")
		}
	}
}

// bearerToken extracts the credential from "Authorization: Bearer
// <token>". The scheme comparison is case-insensitive per RFC 7235.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}
