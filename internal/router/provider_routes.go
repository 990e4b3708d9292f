package router

import (
	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/handler"
	"github.com/venuehub/venuehub-api/internal/middleware"
)

// RegisterProvider registers provider self-service endpoints under
// /v1/me.  All routes require a valid JWT carrying the provider role.
// The public self-registration endpoint is registered separately with
// the public routes since it needs no account.
func RegisterProvider(e *echo.Echo, h *handler.ProviderHandler, jwtSecret string) {
	g := e.Group(
		"/v1/me",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleProvider),
	)

	g.GET("/provider", h.GetProfile)
	g.POST("/provider", h.UpsertProfile)

	g.POST("/acts", h.CreateAct)
	g.POST("/packages", h.AddPackage)
	g.POST("/media", h.AddMedia)
	g.POST("/availability", h.AddAvailability)
}
