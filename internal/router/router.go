// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/venuehub/venuehub-api/internal/config"
	"github.com/venuehub/venuehub-api/internal/handler"
	"github.com/venuehub/venuehub-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Register and login
// live under /v1/auth without middleware; /v1/me requires a valid token
// but no particular role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse and capture
// endpoints.  Read endpoints get the Redis response cache and the token
// bucket limiter; write endpoints (enquiries, reviews, provider
// self-registration) get only the limiter so anonymous traffic cannot
// flood the capture tables.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, b *handler.BookingHandler,
	rv *handler.ReviewHandler, pr *handler.ProviderHandler, rdb *redis.Client) {

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/v1", limiter)

	// Browse.
	g.GET("/acts", p.ListActs, cache)
	g.GET("/acts/:id", p.GetAct, cache)
	g.GET("/venues", p.ListVenues, cache)
	g.GET("/venues/:id", p.GetVenue, cache)
	g.GET("/featured/acts", p.FeaturedActs, cache)
	g.GET("/featured/venues", p.FeaturedVenues, cache)
	g.GET("/search", p.Search, cache)
	g.GET("/reviews", rv.List, cache)

	// Capture.
	g.POST("/enquiries", b.Create)
	g.POST("/bookings", b.Create) // legacy alias for older storefront clients
	g.POST("/reviews", rv.Create)
	g.POST("/providers/register", pr.SelfRegister)
}
