package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/config"
	"github.com/venuehub/venuehub-api/internal/database"
	"github.com/venuehub/venuehub-api/internal/handler"
	"github.com/venuehub/venuehub-api/internal/queue"
	"github.com/venuehub/venuehub-api/internal/repository"
	"github.com/venuehub/venuehub-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	// Redis backs the public-route response cache and rate limiter.  A
	// nil client degrades both to pass-throughs.
	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	businesses := repository.NewBusinessRepo(db)
	acts := repository.NewActRepo(db)
	venues := repository.NewVenueRepo(db)
	leads := repository.NewLeadRepo(db)
	bookings := repository.NewBookingRepo(db, leads)
	reviews := repository.NewReviewRepo(db)
	providers := repository.NewProviderRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, businesses)
	publicH := handler.NewPublicHandler(acts, venues)
	bookingH := handler.NewBookingHandler(bookings, acts, venues)
	reviewH := handler.NewReviewHandler(reviews, acts, venues)
	providerH := handler.NewProviderHandler(providers, acts, venues)
	leadH := handler.NewBusinessLeadHandler(leads, businesses)
	adminH := handler.NewAdminHandler(acts, venues, bookings, reviews, businesses, providers)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, bookingH, reviewH, providerH, rdb)
	router.RegisterBusiness(e, leadH, cfg.JWTSecret)
	router.RegisterProvider(e, providerH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background consumer for booking.created / lead.unlocked events.
	go queue.StartLeadConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
