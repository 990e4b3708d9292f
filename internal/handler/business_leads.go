package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/middleware"
	"github.com/venuehub/venuehub-api/internal/queue"
	"github.com/venuehub/venuehub-api/internal/repository"
	queue_publisher "github.com/venuehub/venuehub-api/internal/service"
)

// redactedEmail is what a business sees in place of the customer email
// for leads it has not paid for.
const redactedEmail = "unlock to view"

// BusinessLeadHandler serves the business-role lead surface: the list of
// all captured leads with per-caller contact redaction, and the unlock
// operation that spends a credit to reveal a contact.
type BusinessLeadHandler struct {
	Leads      *repository.LeadRepo
	Businesses *repository.BusinessRepo
}

func NewBusinessLeadHandler(l *repository.LeadRepo, b *repository.BusinessRepo) *BusinessLeadHandler {
	return &BusinessLeadHandler{Leads: l, Businesses: b}
}

type leadView struct {
	LeadID        uint64    `json:"lead_id"`
	BookingID     uint64    `json:"booking_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Date          string    `json:"date"`
	Message       string    `json:"message"`
	ActID         *uint64   `json:"act_id,omitempty"`
	VenueID       *uint64   `json:"venue_id,omitempty"`
	Unlocked      bool      `json:"unlocked"`
	CreatedAt     time.Time `json:"created_at"`
}

// List handles GET /v1/business/leads.  Every business sees every lead;
// the customer email is replaced with the redaction placeholder unless
// this business is the one that unlocked the lead.  The response also
// carries the caller's current credit balance for the storefront header.
func (h *BusinessLeadHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	biz, err := h.Businesses.GetByUserID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no business profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	rows, err := h.Leads.ListWithBookings(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]leadView, 0, len(rows))
	for _, lr := range rows {
		mine := lr.UnlockedByBusinessID != nil && *lr.UnlockedByBusinessID == biz.ID
		email := redactedEmail
		if mine {
			email = lr.CustomerEmail
		}
		out = append(out, leadView{
			LeadID:        lr.LeadID,
			BookingID:     lr.BookingID,
			CustomerName:  lr.CustomerName,
			CustomerEmail: email,
			Date:          lr.Date,
			Message:       lr.Message,
			ActID:         lr.ActID,
			VenueID:       lr.VenueID,
			Unlocked:      mine,
			CreatedAt:     lr.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":         out,
		"lead_credits": biz.LeadCredits,
	})
}

// Unlock handles POST /v1/business/leads/:id/unlock.  Spends one credit
// to reveal the lead's contact; repeat calls by the same business are
// free.  Error mapping: 404 unknown lead, 402 empty balance, 409 lead
// owned by another business.  On a successful spend a lead.unlocked
// event is published (best effort).
func (h *BusinessLeadHandler) Unlock(c echo.Context) error {
	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lead id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	biz, err := h.Businesses.GetByUserID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no business profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	remaining, err := h.Leads.Unlock(ctx, biz.ID, leadID)
	switch {
	case err == sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lead not found"})
	case err == repository.ErrInsufficientCredits:
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "insufficient lead credits"})
	case err == repository.ErrAlreadyUnlocked:
		return c.JSON(http.StatusConflict, echo.Map{"error": "lead already unlocked by another business"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unlock failed"})
	}

	// Fetch the now-visible contact for the response body.
	var email string
	if err := h.Leads.DB().QueryRowContext(ctx,
		`SELECT b.customer_email FROM leads l JOIN bookings b ON b.id = l.booking_id WHERE l.id = ?`,
		leadID).Scan(&email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	_ = queue_publisher.PublishLeadUnlocked(ctx, queue.LeadUnlockedEvent{
		LeadID:           leadID,
		BusinessID:       biz.ID,
		RemainingCredits: remaining,
		UnlockedAt:       time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"lead_id":        leadID,
		"customer_email": email,
		"lead_credits":   remaining,
	})
}
