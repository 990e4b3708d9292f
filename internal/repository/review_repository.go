package repository

import (
	"context"
	"database/sql"

	"github.com/venuehub/venuehub-api/internal/model"
)

// ReviewRepo provides data access to the reviews table and its
// moderation queue.  Submissions always enter as pending; only approved
// reviews are visible on the public surface.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review in pending status.  The rating is clamped to
// [1,5] here regardless of what the caller supplied, so no out-of-range
// value can reach the table through any handler.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	if rev.Rating < 1 {
		rev.Rating = 1
	}
	if rev.Rating > 5 {
		rev.Rating = 5
	}
	rev.Status = model.ReviewStatusPending
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (author_name, rating, comment, act_id, venue_id, status) VALUES (?,?,?,?,?,?)",
		rev.AuthorName, rev.Rating, rev.Comment, rev.ActID, rev.VenueID, rev.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM reviews WHERE id=?", rev.ID).Scan(&rev.CreatedAt)
}

// ListApproved returns approved reviews newest first, optionally filtered
// to a single act or venue.
func (r *ReviewRepo) ListApproved(ctx context.Context, actID, venueID *uint64) ([]model.Review, error) {
	q := `SELECT id, author_name, rating, comment, act_id, venue_id, status, COALESCE(response,''), created_at
	      FROM reviews WHERE status = ?`
	args := []any{model.ReviewStatusApproved}
	if actID != nil {
		q += " AND act_id = ?"
		args = append(args, *actID)
	}
	if venueID != nil {
		q += " AND venue_id = ?"
		args = append(args, *venueID)
	}
	q += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// ListPending returns the moderation queue, oldest first so admins work
// through submissions in arrival order.
func (r *ReviewRepo) ListPending(ctx context.Context) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_name, rating, comment, act_id, venue_id, status, COALESCE(response,''), created_at
		 FROM reviews WHERE status = ? ORDER BY id`, model.ReviewStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// Moderate transitions a review to the requested terminal status with an
// optional admin response.  The status must already be validated by the
// handler.  sql.ErrNoRows when the review does not exist.
func (r *ReviewRepo) Moderate(ctx context.Context, id uint64, status, response string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET status = ?, response = ? WHERE id = ?",
		status, response, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM reviews WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

func scanReview(rows *sql.Rows) (model.Review, error) {
	var rev model.Review
	var actID, venueID sql.NullInt64
	err := rows.Scan(&rev.ID, &rev.AuthorName, &rev.Rating, &rev.Comment, &actID, &venueID,
		&rev.Status, &rev.Response, &rev.CreatedAt)
	if err != nil {
		return rev, err
	}
	if actID.Valid {
		v := uint64(actID.Int64)
		rev.ActID = &v
	}
	if venueID.Valid {
		v := uint64(venueID.Int64)
		rev.VenueID = &v
	}
	return rev, nil
}
