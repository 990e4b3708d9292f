package router

import (
	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/handler"
	"github.com/venuehub/venuehub-api/internal/middleware"
)

// RegisterAdmin registers admin endpoints under /v1/admin.  All routes
// require a valid JWT carrying the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAdmin),
	)

	// ---- Acts ----
	g.GET("/acts", h.ListActs)
	g.POST("/acts", h.CreateAct)
	g.PUT("/acts/:id", h.UpdateAct)
	g.PATCH("/acts/:id", h.UpdateAct)
	g.DELETE("/acts/:id", h.DeleteAct)

	// ---- Venues ----
	g.GET("/venues", h.ListVenues)
	g.POST("/venues", h.CreateVenue)
	g.PUT("/venues/:id", h.UpdateVenue)
	g.PATCH("/venues/:id", h.UpdateVenue)
	g.DELETE("/venues/:id", h.DeleteVenue)

	// ---- Bookings ----
	g.GET("/bookings", h.ListBookings)
	g.DELETE("/bookings/:id", h.DeleteBooking)

	// ---- Review moderation ----
	g.GET("/reviews", h.PendingReviews)
	g.PATCH("/reviews/:id", h.ModerateReview)

	// ---- Lead credits ----
	g.POST("/businesses/:id/credits", h.GrantCredits)

	// ---- Provider submissions ----
	g.GET("/submissions", h.ListSubmissions)
}
