package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/venuehub/venuehub-api/internal/model"
)

// VenueRepo provides data access to the venues table.  It mirrors
// ActRepo: filtered public search, slug lookup, featured rail and admin
// CRUD, with venue-specific filter fields (style instead of act type).
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a new VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// VenueSearchQuery defines filters & pagination for browsing venues.
type VenueSearchQuery struct {
	Q        string
	Location string
	Style    string
	PriceMin *float64
	PriceMax *float64
	Page     int
	PageSize int
}

const venueColumns = `id, COALESCE(slug,''), name, location, capacity, price_from,
	COALESCE(style,''), COALESCE(image_url,''), COALESCE(amenities,''), featured, premium`

func scanVenue(row interface{ Scan(...any) error }) (model.Venue, error) {
	var v model.Venue
	var capacity sql.NullInt64
	var priceFrom sql.NullFloat64
	err := row.Scan(&v.ID, &v.Slug, &v.Name, &v.Location, &capacity, &priceFrom,
		&v.Style, &v.ImageURL, &v.Amenities, &v.Featured, &v.Premium)
	if err != nil {
		return v, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		v.Capacity = &c
	}
	if priceFrom.Valid {
		p := priceFrom.Float64
		v.PriceFrom = &p
	}
	return v, nil
}

// Search returns venues matching the query ordered by promotion flags
// with id DESC as tiebreak, plus the total match count.
func (r *VenueRepo) Search(ctx context.Context, q VenueSearchQuery) ([]model.Venue, int64, error) {
	where := []string{}
	args := []any{}

	if q.Q != "" {
		needle := "%" + strings.ToLower(q.Q) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(COALESCE(amenities,'')) LIKE ?)")
		args = append(args, needle, needle)
	}
	if q.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if q.Style != "" {
		where = append(where, "LOWER(COALESCE(style,'')) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Style)+"%")
	}
	if q.PriceMin != nil {
		where = append(where, "price_from >= ?")
		args = append(args, *q.PriceMin)
	}
	if q.PriceMax != nil {
		where = append(where, "price_from <= ?")
		args = append(args, *q.PriceMax)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venues WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	dataSQL := "SELECT " + venueColumns + ` FROM venues
		WHERE ` + cond + `
		ORDER BY premium DESC, featured DESC, id DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Venue, 0, limit)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByIDOrSlug resolves a numeric id or slug path parameter.
func (r *VenueRepo) GetByIDOrSlug(ctx context.Context, idOrSlug string) (model.Venue, error) {
	if id, err := strconv.ParseUint(idOrSlug, 10, 64); err == nil {
		return scanVenue(r.db.QueryRowContext(ctx,
			"SELECT "+venueColumns+" FROM venues WHERE id=? LIMIT 1", id))
	}
	return scanVenue(r.db.QueryRowContext(ctx,
		"SELECT "+venueColumns+" FROM venues WHERE slug=? LIMIT 1", idOrSlug))
}

// Exists reports whether a venue with the given id exists.
func (r *VenueRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM venues WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Featured returns the homepage rail: top 8 venues by promotion flags,
// cheapest first within the same tier (the original storefront ordering).
func (r *VenueRepo) Featured(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+venueColumns+" FROM venues ORDER BY premium DESC, featured DESC, price_from ASC LIMIT 8")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Venue, 0, 8)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListAll returns every venue.  Admin surface only.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+venueColumns+" FROM venues ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts a venue and populates its generated ID.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO venues (slug, name, location, capacity, price_from, style, image_url, amenities, featured, premium)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		v.Slug, v.Name, v.Location, v.Capacity, v.PriceFrom, v.Style, v.ImageURL, v.Amenities, v.Featured, v.Premium)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// Update overwrites a venue's mutable fields.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE venues SET name=?, location=?, capacity=?, price_from=?, style=?,
		        image_url=?, amenities=?, featured=?, premium=?
		 WHERE id=?`,
		v.Name, v.Location, v.Capacity, v.PriceFrom, v.Style,
		v.ImageURL, v.Amenities, v.Featured, v.Premium, v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM venues WHERE id=?", v.ID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a venue.  sql.ErrNoRows when it does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM venues WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
