package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/model"
	"github.com/venuehub/venuehub-api/internal/queue"
	"github.com/venuehub/venuehub-api/internal/repository"
	queue_publisher "github.com/venuehub/venuehub-api/internal/service"
)

// BookingHandler captures public enquiries.  No authentication: the
// submitting customer has no account.  Every accepted enquiry produces a
// booking row and its lead in one transaction.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Acts     *repository.ActRepo
	Venues   *repository.VenueRepo
}

func NewBookingHandler(b *repository.BookingRepo, a *repository.ActRepo, v *repository.VenueRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Acts: a, Venues: v}
}

type enquiryReq struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	Date          string  `json:"date"`
	Message       string  `json:"message"`
	ActID         *uint64 `json:"act_id"`
	VenueID       *uint64 `json:"venue_id"`
}

// Create handles POST /v1/enquiries (and its /v1/bookings alias).
// Requires a name, an email and at least one of act_id/venue_id; both at
// once is allowed and means the customer wants the pair together.
// Referenced listings must exist.  On success it returns 201 with the
// booking and lead ids and publishes a booking.created event; the event
// is best effort and never fails the request.
func (h *BookingHandler) Create(c echo.Context) error {
	var req enquiryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name and customer_email required"})
	}
	if !strings.Contains(req.CustomerEmail, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer_email"})
	}
	if req.ActID == nil && req.VenueID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "act_id or venue_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.ActID != nil {
		ok, err := h.Acts.Exists(ctx, *req.ActID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
	}
	if req.VenueID != nil {
		ok, err := h.Venues.Exists(ctx, *req.VenueID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
	}

	b := model.Booking{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Date:          strings.TrimSpace(req.Date),
		Message:       req.Message,
		ActID:         req.ActID,
		VenueID:       req.VenueID,
	}
	leadID, err := h.Bookings.CreateWithLead(ctx, &b)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create enquiry failed"})
	}

	// Fire the event after commit; the enquiry is stored either way.
	_ = queue_publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:    b.ID,
		LeadID:       leadID,
		CustomerName: b.CustomerName,
		Date:         b.Date,
		ActID:        b.ActID,
		VenueID:      b.VenueID,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id": b.ID,
		"lead_id":    leadID,
		"created_at": b.CreatedAt,
	})
}
