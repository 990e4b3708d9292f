package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/middleware"
	"github.com/venuehub/venuehub-api/internal/model"
	"github.com/venuehub/venuehub-api/internal/repository"
	"github.com/venuehub/venuehub-api/internal/utils"
)

// ProviderHandler serves the provider-role self-service surface (profile
// and act management) plus the public self-registration endpoint that
// creates a listing and queues it for vetting.
type ProviderHandler struct {
	Providers *repository.ProviderRepo
	Acts      *repository.ActRepo
	Venues    *repository.VenueRepo
}

func NewProviderHandler(p *repository.ProviderRepo, a *repository.ActRepo, v *repository.VenueRepo) *ProviderHandler {
	return &ProviderHandler{Providers: p, Acts: a, Venues: v}
}

// ----- provider profile -----

type providerProfileReq struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
}
type providerProfileResp struct {
	ID          uint64 `json:"id"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
	Status      string `json:"status"`
}

// GetProfile handles GET /v1/me/provider.
func (h *ProviderHandler) GetProfile(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Providers.GetByUserID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no provider profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, providerProfileResp{
		ID: p.ID, DisplayName: p.DisplayName, Phone: p.Phone, Website: p.Website,
		Location: p.Location, Bio: p.Bio, Status: p.Status,
	})
}

// UpsertProfile handles POST /v1/me/provider.  First write creates the
// profile in pending status; later writes update fields without touching
// the vetting status.
func (h *ProviderHandler) UpsertProfile(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req providerProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "display_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.Provider{
		UserID:      uid,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Website:     req.Website,
		Location:    req.Location,
		Bio:         req.Bio,
	}
	if err := h.Providers.Upsert(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save profile failed"})
	}
	return c.JSON(http.StatusOK, providerProfileResp{
		ID: p.ID, DisplayName: p.DisplayName, Phone: p.Phone, Website: p.Website,
		Location: p.Location, Bio: p.Bio, Status: p.Status,
	})
}

// ----- provider-owned act management -----

type actReq struct {
	Name        string   `json:"name"`
	ActType     string   `json:"act_type"`
	Location    string   `json:"location"`
	PriceFrom   *float64 `json:"price_from"`
	Genres      string   `json:"genres"`
	ImageURL    string   `json:"image_url"`
	VideoURL    string   `json:"video_url"`
	Description string   `json:"description"`
}

// CreateAct handles POST /v1/me/acts: a provider listing a new act.
// Promotion flags are never settable here; they stay admin-only.
func (h *ProviderHandler) CreateAct(c echo.Context) error {
	var req actReq
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
		Slug:        utils.Slugify(req.Name),
		Name:        req.Name,
		ActType:     req.ActType,
		Location:    req.Location,
		PriceFrom:   req.PriceFrom,
		Genres:      req.Genres,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		Description: req.Description,
	}
	if err := h.Acts.Create(ctx, &a); err != nil {
		// Slug collision: retry once with a timestamp suffix.
		a.Slug = a.Slug + "-" + time.Now().UTC().Format("20060102150405")
		if err := h.Acts.Create(ctx, &a); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create act failed"})
		}
	}
	return c.JSON(http.StatusCreated, a)
}

type packageReq struct {
	ActID        uint64  `json:"act_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationMins *int    `json:"duration_mins"`
	Description  string  `json:"description"`
}

// AddPackage handles POST /v1/me/packages.
func (h *ProviderHandler) AddPackage(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ActID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "act_id and name required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Providers.ActExists(ctx, req.ActID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
	}

	p := model.Package{
		ActID: req.ActID, Name: req.Name, Price: req.Price,
		DurationMins: req.DurationMins, Description: req.Description,
	}
	if err := h.Providers.AddPackage(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create package failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

type mediaReq struct {
	ActID     uint64 `json:"act_id"`
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	Sort      int    `json:"sort"`
}

// AddMedia handles POST /v1/me/media.
func (h *ProviderHandler) AddMedia(c echo.Context) error {
	var req mediaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.ActID == 0 || req.URL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "act_id and url required"})
	}
	if req.MediaType != "image" && req.MediaType != "video" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "media_type must be image or video"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Providers.ActExists(ctx, req.ActID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
	}

	m := model.Media{ActID: req.ActID, URL: req.URL, MediaType: req.MediaType, Sort: req.Sort}
	if err := h.Providers.AddMedia(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create media failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

type availabilityReq struct {
	ActID       uint64 `json:"act_id"`
	Date        string `json:"date"`
	IsAvailable *bool  `json:"is_available"`
}

// AddAvailability handles POST /v1/me/availability.  is_available
// defaults to true when omitted.
func (h *ProviderHandler) AddAvailability(c echo.Context) error {
	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Date = strings.TrimSpace(req.Date)
	if req.ActID == 0 || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "act_id and date required"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Providers.ActExists(ctx, req.ActID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
	}

	avail := true
	if req.IsAvailable != nil {
		avail = *req.IsAvailable
	}
	a := model.Availability{ActID: req.ActID, Date: req.Date, IsAvailable: avail}
	if err := h.Providers.AddAvailability(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create availability failed"})
	}
	return c.JSON(http.StatusCreated, a)
}

// ----- public self-registration -----

type actSubmission struct {
	Name        string   `json:"name"`
	ActType     string   `json:"act_type"`
	Location    string   `json:"location"`
	PriceFrom   *float64 `json:"price_from"`
	Genres      string   `json:"genres"`
	Description string   `json:"description"`
}
type venueSubmission struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Capacity  *int     `json:"capacity"`
	PriceFrom *float64 `json:"price_from"`
	Style     string   `json:"style"`
	Amenities string   `json:"amenities"`
}
type selfRegisterReq struct {
	Kind          string           `json:"kind"` // "act" or "venue"
	SubmitterName string           `json:"submitter_name"`
	Act           *actSubmission   `json:"act"`
	Venue         *venueSubmission `json:"venue"`
}

// SelfRegister handles POST /v1/providers/register: the public form for
// performers and venue owners without accounts.  The submitted listing
// goes live immediately (unpromoted, so it sorts below vetted stock) and
// a pending submissions row records it for admin review.
func (h *ProviderHandler) SelfRegister(c echo.Context) error {
	var req selfRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var kind string
	var listingID uint64
	switch {
	case req.Kind == "act" && req.Act != nil:
		req.Act.Name = strings.TrimSpace(req.Act.Name)
		if req.Act.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "act.name required"})
		}
		a := model.Act{
			Slug:        utils.Slugify(req.Act.Name),
			Name:        req.Act.Name,
			ActType:     req.Act.ActType,
			Location:    req.Act.Location,
			PriceFrom:   req.Act.PriceFrom,
			Genres:      req.Act.Genres,
			Description: req.Act.Description,
		}
		if err := h.Acts.Create(ctx, &a); err != nil {
			a.Slug = a.Slug + "-" + time.Now().UTC().Format("20060102150405")
			if err := h.Acts.Create(ctx, &a); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
			}
		}
		kind, listingID = "act", a.ID
	case req.Kind == "venue" && req.Venue != nil:
		req.Venue.Name = strings.TrimSpace(req.Venue.Name)
		if req.Venue.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue.name required"})
		}
		v := model.Venue{
			Slug:      utils.Slugify(req.Venue.Name),
			Name:      req.Venue.Name,
			Location:  req.Venue.Location,
			Capacity:  req.Venue.Capacity,
			PriceFrom: req.Venue.PriceFrom,
			Style:     req.Venue.Style,
			Amenities: req.Venue.Amenities,
		}
		if err := h.Venues.Create(ctx, &v); err != nil {
			v.Slug = v.Slug + "-" + time.Now().UTC().Format("20060102150405")
			if err := h.Venues.Create(ctx, &v); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
			}
		}
		kind, listingID = "venue", v.ID
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be act or venue with a matching payload"})
	}

	s := model.Submission{Kind: kind, ListingID: listingID, SubmitterName: strings.TrimSpace(req.SubmitterName)}
	if err := h.Providers.RecordSubmission(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record submission failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"submission": s,
		"listing_id": listingID,
		"kind":       kind,
	})
}
