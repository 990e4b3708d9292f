package router

import (
	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/handler"
	"github.com/venuehub/venuehub-api/internal/middleware"
)

// RegisterBusiness registers business-scoped endpoints under
// /v1/business.  All routes require a valid JWT carrying the business
// role.
func RegisterBusiness(e *echo.Echo, h *handler.BusinessLeadHandler, jwtSecret string) {
	g := e.Group(
		"/v1/business",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleBusiness),
	)

	g.GET("/leads", h.List)
	g.POST("/leads/:id/unlock", h.Unlock)
}
