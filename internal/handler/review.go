package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/model"
	"github.com/venuehub/venuehub-api/internal/repository"
)

// ReviewHandler serves the public review surface: anonymous submission
// into the moderation queue and the approved-only listing.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
	Acts    *repository.ActRepo
	Venues  *repository.VenueRepo
}

func NewReviewHandler(r *repository.ReviewRepo, a *repository.ActRepo, v *repository.VenueRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Acts: a, Venues: v}
}

type reviewReq struct {
	AuthorName string  `json:"author_name"`
	Rating     int     `json:"rating"`
	Comment    string  `json:"comment"`
	ActID      *uint64 `json:"act_id"`
	VenueID    *uint64 `json:"venue_id"`
}

// Create handles POST /v1/reviews.  Anyone may submit; the review lands
// in the moderation queue as pending and stays invisible until an admin
// approves it.  Exactly one of act_id/venue_id must reference an
// existing listing.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	if req.AuthorName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "author_name required"})
	}
	if (req.ActID == nil) == (req.VenueID == nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of act_id or venue_id required"})
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
	} else {
		ok, err := h.Venues.Exists(ctx, *req.VenueID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
	}

	rev := model.Review{
		AuthorName: req.AuthorName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ActID:      req.ActID,
		VenueID:    req.VenueID,
	}
	if err := h.Reviews.Create(ctx, &rev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, rev)
}

// List handles GET /v1/reviews.  Only approved reviews are ever served
// here; pending and rejected rows do not exist as far as public callers
// are concerned.  Optional act_id/venue_id filters narrow to a listing.
func (h *ReviewHandler) List(c echo.Context) error {
	var actID, venueID *uint64
	if s := c.QueryParam("act_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid act_id"})
		}
		actID = &v
	}
	if s := c.QueryParam("venue_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue_id"})
		}
		venueID = &v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Reviews.ListApproved(ctx, actID, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
