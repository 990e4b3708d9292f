package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/venuehub/venuehub-api/internal/utils"
)

// Role names accepted by RequireRole.  They correspond to the boolean
// flags carried in the token's "roles" claim.
const (
    RoleAdmin    = "admin"
    RoleProvider = "provider"
    RoleBusiness = "business"
)

// RequireRole returns a middleware that enforces a single role flag from
// the authenticated user's role-claim set.  Every gated endpoint checks
// exactly one flag; there is no "any of" logic.  It assumes JWTAuth has
// already stored the claims in the context.  A missing or false flag is
// rejected with 403 Forbidden.
func RequireRole(role string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            roles, ok := c.Get(CtxRoles).(utils.RoleClaims)
            if !ok {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            allowed := false
            switch role {
            case RoleAdmin:
                allowed = roles.Admin
            case RoleProvider:
                allowed = roles.Provider
            case RoleBusiness:
                allowed = roles.Business
            }
            if !allowed {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
