package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/repository"
)

// PublicHandler exposes the unauthenticated browse surface: filtered act
// and venue listings, single-item lookups by id or slug, the featured
// rails and the combined search endpoint.  All of it is read-only.
type PublicHandler struct {
	Acts   *repository.ActRepo
	Venues *repository.VenueRepo
}

func NewPublicHandler(acts *repository.ActRepo, venues *repository.VenueRepo) *PublicHandler {
	return &PublicHandler{Acts: acts, Venues: venues}
}

// pageParams reads page/page_size query params with the usual clamping.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	ps, _ := strconv.Atoi(c.QueryParam("page_size"))
	if ps < 1 {
		ps = 20
	}
	if ps > 100 {
		ps = 100
	}
	return page, ps
}

// priceParam parses an optional float query param, nil when absent or bad.
func priceParam(c echo.Context, name string) *float64 {
	s := strings.TrimSpace(c.QueryParam(name))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ListActs handles GET /v1/acts.  Filters: q (name/description/genres
// substring), location, type (act type), price_min/price_max inclusive.
// Results are ordered premium, featured, then newest id.
func (h *PublicHandler) ListActs(c echo.Context) error {
	page, ps := pageParams(c)
	q := repository.ActSearchQuery{
		Q:        strings.TrimSpace(c.QueryParam("q")),
		Location: strings.TrimSpace(c.QueryParam("location")),
		ActType:  strings.TrimSpace(c.QueryParam("type")),
		PriceMin: priceParam(c, "price_min"),
		PriceMax: priceParam(c, "price_max"),
		Page:     page,
		PageSize: ps,
	}
	items, total, err := h.Acts.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}

// GetAct handles GET /v1/acts/:id where :id is a numeric id or a slug.
func (h *PublicHandler) GetAct(c echo.Context) error {
	a, err := h.Acts.GetByIDOrSlug(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "act not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, a)
}

// ListVenues handles GET /v1/venues.  Filters mirror ListActs with
// style in place of act type.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	page, ps := pageParams(c)
	q := repository.VenueSearchQuery{
		Q:        strings.TrimSpace(c.QueryParam("q")),
		Location: strings.TrimSpace(c.QueryParam("location")),
		Style:    strings.TrimSpace(c.QueryParam("style")),
		PriceMin: priceParam(c, "price_min"),
		PriceMax: priceParam(c, "price_max"),
		Page:     page,
		PageSize: ps,
	}
	items, total, err := h.Venues.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}

// GetVenue handles GET /v1/venues/:id where :id is a numeric id or a slug.
func (h *PublicHandler) GetVenue(c echo.Context) error {
	v, err := h.Venues.GetByIDOrSlug(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, v)
}

// FeaturedActs handles GET /v1/featured/acts: the top-8 homepage rail.
func (h *PublicHandler) FeaturedActs(c echo.Context) error {
	items, err := h.Acts.Featured(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// FeaturedVenues handles GET /v1/featured/venues.
func (h *PublicHandler) FeaturedVenues(c echo.Context) error {
	items, err := h.Venues.Featured(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Search handles GET /v1/search: a combined act+venue substring search
// for the storefront search box.  type=all|acts|venues selects which
// lists are populated; each side is capped at 48 rows.
func (h *PublicHandler) Search(c echo.Context) error {
	qText := strings.TrimSpace(c.QueryParam("q"))
	kind := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if kind == "" {
		kind = "all"
	}

	ctx := c.Request().Context()
	acts := []any{}
	venues := []any{}

	if kind == "all" || kind == "acts" {
		items, _, err := h.Acts.Search(ctx, repository.ActSearchQuery{Q: qText, Page: 1, PageSize: 48})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for _, a := range items {
			acts = append(acts, a)
		}
	}
	if kind == "all" || kind == "venues" {
		items, _, err := h.Venues.Search(ctx, repository.VenueSearchQuery{Q: qText, Page: 1, PageSize: 48})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for _, v := range items {
			venues = append(venues, v)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"acts": acts, "venues": venues})
}
