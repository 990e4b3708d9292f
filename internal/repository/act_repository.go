package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/venuehub/venuehub-api/internal/model"
)

// ActRepo provides data access to the acts table: the public filtered
// search, slug lookups, the featured rail and the admin/provider CRUD.
type ActRepo struct {
	db *sql.DB
}

// NewActRepo returns a new ActRepo bound to the given database.
func NewActRepo(db *sql.DB) *ActRepo { return &ActRepo{db: db} }

// ActSearchQuery defines filters & pagination for browsing acts.  Free
// text matches name, description and genres case-insensitively; price
// bounds are inclusive on price_from.
type ActSearchQuery struct {
	Q        string
	Location string
	ActType  string
	PriceMin *float64
	PriceMax *float64
	Page     int
	PageSize int
}

const actColumns = `id, COALESCE(slug,''), name, act_type, location, price_from, rating,
	COALESCE(genres,''), COALESCE(image_url,''), COALESCE(video_url,''), COALESCE(description,''),
	featured, premium`

func scanAct(row interface{ Scan(...any) error }) (model.Act, error) {
	var a model.Act
	var priceFrom, rating sql.NullFloat64
	err := row.Scan(&a.ID, &a.Slug, &a.Name, &a.ActType, &a.Location, &priceFrom, &rating,
		&a.Genres, &a.ImageURL, &a.VideoURL, &a.Description, &a.Featured, &a.Premium)
	if err != nil {
		return a, err
	}
	if priceFrom.Valid {
		v := priceFrom.Float64
		a.PriceFrom = &v
	}
	if rating.Valid {
		v := rating.Float64
		a.Rating = &v
	}
	return a, nil
}

// Search returns acts matching the query, ordered by the promotion flags
// with id as deterministic tiebreak (premium DESC, featured DESC, id
// DESC), plus the total match count for pagination.
func (r *ActRepo) Search(ctx context.Context, q ActSearchQuery) ([]model.Act, int64, error) {
	where := []string{}
	args := []any{}

	if q.Q != "" {
		needle := "%" + strings.ToLower(q.Q) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(COALESCE(description,'')) LIKE ? OR LOWER(COALESCE(genres,'')) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if q.ActType != "" {
		where = append(where, "LOWER(act_type) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.ActType)+"%")
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
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM acts WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	dataSQL := "SELECT " + actColumns + ` FROM acts
		WHERE ` + cond + `
		ORDER BY premium DESC, featured DESC, id DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Act, 0, limit)
	for rows.Next() {
		a, err := scanAct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByIDOrSlug resolves a path parameter that is either a numeric id or
// a slug.  sql.ErrNoRows when no act matches.
func (r *ActRepo) GetByIDOrSlug(ctx context.Context, idOrSlug string) (model.Act, error) {
	if id, err := strconv.ParseUint(idOrSlug, 10, 64); err == nil {
		return scanAct(r.db.QueryRowContext(ctx,
			"SELECT "+actColumns+" FROM acts WHERE id=? LIMIT 1", id))
	}
	return scanAct(r.db.QueryRowContext(ctx,
		"SELECT "+actColumns+" FROM acts WHERE slug=? LIMIT 1", idOrSlug))
}

// Exists reports whether an act with the given id exists.  Used to
// validate enquiry references before writing a booking.
func (r *ActRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM acts WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Featured returns the homepage rail: top 8 acts by promotion flags, best
// rated first within the same tier.
func (r *ActRepo) Featured(ctx context.Context) ([]model.Act, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+actColumns+" FROM acts ORDER BY premium DESC, featured DESC, rating DESC LIMIT 8")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Act, 0, 8)
	for rows.Next() {
		a, err := scanAct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAll returns every act without ordering guarantees beyond id.  Admin
// surface only; the public listing goes through Search.
func (r *ActRepo) ListAll(ctx context.Context) ([]model.Act, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+actColumns+" FROM acts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Act, 0)
	for rows.Next() {
		a, err := scanAct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create inserts an act and populates its generated ID.  The slug must be
// unique; on collision the caller may retry with a suffixed slug.
func (r *ActRepo) Create(ctx context.Context, a *model.Act) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO acts (slug, name, act_type, location, price_from, rating, genres, image_url, video_url, description, featured, premium)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.Slug, a.Name, a.ActType, a.Location, a.PriceFrom, a.Rating, a.Genres, a.ImageURL, a.VideoURL, a.Description, a.Featured, a.Premium)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// Update overwrites an act's mutable fields.  sql.ErrNoRows when the act
// does not exist.
func (r *ActRepo) Update(ctx context.Context, a *model.Act) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE acts SET name=?, act_type=?, location=?, price_from=?, rating=?, genres=?,
		        image_url=?, video_url=?, description=?, featured=?, premium=?
		 WHERE id=?`,
		a.Name, a.ActType, a.Location, a.PriceFrom, a.Rating, a.Genres,
		a.ImageURL, a.VideoURL, a.Description, a.Featured, a.Premium, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "missing" from "update was a no-op".
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM acts WHERE id=?", a.ID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an act.  sql.ErrNoRows when it does not exist.
func (r *ActRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM acts WHERE id=?", id)
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
