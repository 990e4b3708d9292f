package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/model"
	"github.com/venuehub/venuehub-api/internal/repository"
	"github.com/venuehub/venuehub-api/internal/utils"
)

// AdminHandler serves the admin-role surface: listing CRUD including the
// promotion flags, the booking roster, review moderation, credit grants
// and the self-registration submissions queue.
type AdminHandler struct {
	Acts       *repository.ActRepo
	Venues     *repository.VenueRepo
	Bookings   *repository.BookingRepo
	Reviews    *repository.ReviewRepo
	Businesses *repository.BusinessRepo
	Providers  *repository.ProviderRepo
}

func NewAdminHandler(a *repository.ActRepo, v *repository.VenueRepo, b *repository.BookingRepo,
	r *repository.ReviewRepo, biz *repository.BusinessRepo, p *repository.ProviderRepo) *AdminHandler {
	return &AdminHandler{Acts: a, Venues: v, Bookings: b, Reviews: r, Businesses: biz, Providers: p}
}

func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// ----- acts -----

type adminActReq struct {
	Name        string   `json:"name"`
	ActType     string   `json:"act_type"`
	Location    string   `json:"location"`
	PriceFrom   *float64 `json:"price_from"`
	Rating      *float64 `json:"rating"`
	Genres      string   `json:"genres"`
	ImageURL    string   `json:"image_url"`
	VideoURL    string   `json:"video_url"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
	Premium     bool     `json:"premium"`
}

// ListActs handles GET /v1/admin/acts: the full unfiltered roster.
func (h *AdminHandler) ListActs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	out, err := h.Acts.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// CreateAct handles POST /v1/admin/acts.  Unlike the provider endpoint
// this one may set the promotion flags and the seeded rating.
func (h *AdminHandler) CreateAct(c echo.Context) error {
	var req adminActReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a := model.Act{
		Slug: utils.Slugify(req.Name), Name: req.Name, ActType: req.ActType,
		Location: req.Location, PriceFrom: req.PriceFrom, Rating: req.Rating,
		Genres: req.Genres, ImageURL: req.ImageURL, VideoURL: req.VideoURL,
		Description: req.Description, Featured: req.Featured, Premium: req.Premium,
	}
	if err := h.Acts.Create(ctx, &a); err != nil {
		a.Slug = a.Slug + "-" + time.Now().UTC().Format("20060102150405")
		if err := h.Acts.Create(ctx, &a); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create act failed"})
		}
	}
	return c.JSON(http.StatusCreated, a)
}

// UpdateAct handles PUT /v1/admin/acts/:id.
func (h *AdminHandler) UpdateAct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req adminActReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a := model.Act{
		ID: id, Name: req.Name, ActType: req.ActType, Location: req.Location,
		PriceFrom: req.PriceFrom, Rating: req.Rating, Genres: req.Genres,
		ImageURL: req.ImageURL, VideoURL: req.VideoURL, Description: req.Description,
		Featured: req.Featured, Premium: req.Premium,
	}
	if err := h.Acts.Update(ctx, &a); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update act failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteAct handles DELETE /v1/admin/acts/:id.
func (h *AdminHandler) DeleteAct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Acts.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete act failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- venues -----

type adminVenueReq struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Capacity  *int     `json:"capacity"`
	PriceFrom *float64 `json:"price_from"`
	Style     string   `json:"style"`
	ImageURL  string   `json:"image_url"`
	Amenities string   `json:"amenities"`
	Featured  bool     `json:"featured"`
	Premium   bool     `json:"premium"`
}

// ListVenues handles GET /v1/admin/venues.
func (h *AdminHandler) ListVenues(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	out, err := h.Venues.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// CreateVenue handles POST /v1/admin/venues.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	var req adminVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := model.Venue{
		Slug: utils.Slugify(req.Name), Name: req.Name, Location: req.Location,
		Capacity: req.Capacity, PriceFrom: req.PriceFrom, Style: req.Style,
		ImageURL: req.ImageURL, Amenities: req.Amenities,
		Featured: req.Featured, Premium: req.Premium,
	}
	if err := h.Venues.Create(ctx, &v); err != nil {
		v.Slug = v.Slug + "-" + time.Now().UTC().Format("20060102150405")
		if err := h.Venues.Create(ctx, &v); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
		}
	}
	return c.JSON(http.StatusCreated, v)
}

// UpdateVenue handles PUT /v1/admin/venues/:id.
func (h *AdminHandler) UpdateVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req adminVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := model.Venue{
		ID: id, Name: req.Name, Location: req.Location, Capacity: req.Capacity,
		PriceFrom: req.PriceFrom, Style: req.Style, ImageURL: req.ImageURL,
		Amenities: req.Amenities, Featured: req.Featured, Premium: req.Premium,
	}
	if err := h.Venues.Update(ctx, &v); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update venue failed"})
	}
	return c.JSON(http.StatusOK, v)
}

// DeleteVenue handles DELETE /v1/admin/venues/:id.
func (h *AdminHandler) DeleteVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Venues.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete venue failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- bookings -----

type bookingView struct {
	ID            uint64    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Date          string    `json:"date"`
	Message       string    `json:"message"`
	ActID         *uint64   `json:"act_id,omitempty"`
	VenueID       *uint64   `json:"venue_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListBookings handles GET /v1/admin/bookings: every captured enquiry
// with real contact details, newest first.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingView{
			ID: b.ID, CustomerName: b.CustomerName, CustomerEmail: b.CustomerEmail,
			Date: b.Date, Message: b.Message, ActID: b.ActID, VenueID: b.VenueID,
			CreatedAt: b.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id.  Removes the
// booking together with its lead.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Bookings.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- review moderation -----

// PendingReviews handles GET /v1/admin/reviews: the moderation queue in
// arrival order.
func (h *AdminHandler) PendingReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	out, err := h.Reviews.ListPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

type moderateReq struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

// ModerateReview handles PATCH /v1/admin/reviews/:id.  Status must be
// approved or rejected; moderation is terminal either way.
func (h *AdminHandler) ModerateReview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req moderateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Status != model.ReviewStatusApproved && req.Status != model.ReviewStatusRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or rejected"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reviews.Moderate(ctx, id, req.Status, req.Response); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "moderate review failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

// ----- credit grants -----

type grantReq struct {
	Amount int `json:"amount"`
}

// GrantCredits handles POST /v1/admin/businesses/:id/credits: top up a
// business's lead credit balance.  Amount must be positive; negative
// adjustments are not a thing, balances only go down through unlocks.
func (h *AdminHandler) GrantCredits(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req grantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	balance, err := h.Businesses.GrantCredits(ctx, id, req.Amount)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "grant credits failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"business_id": id, "lead_credits": balance})
}

// ----- submissions -----

// ListSubmissions handles GET /v1/admin/submissions with an optional
// ?status= filter.
func (h *AdminHandler) ListSubmissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	out, err := h.Providers.ListSubmissions(ctx, strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
