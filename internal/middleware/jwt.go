package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "errors"   // sentinel comparisons for token validation failures
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/venuehub/venuehub-api/internal/utils" // token parsing and claim types
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
    CtxUserID = "user_id"
    CtxRoles  = "roles"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request context.
// The provided secret must match the one used when issuing tokens.  The
// three failure modes map to distinct 401 messages so clients can tell a
// missing credential from an expired session from a tampered token.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                if errors.Is(err, utils.ErrTokenExpired) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
                }
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the subject (user ID) and the role-claim set in the
            // context for RequireRole and the handlers.
            c.Set(CtxUserID, claims.UserID)
            c.Set(CtxRoles, claims.Roles)
            return next(c)
        }
    }
}

// UserID extracts the authenticated user ID stored by JWTAuth.  The
// boolean is false when the middleware did not run or stored nothing.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(CtxUserID).(uint64)
    return id, ok && id != 0
}
