package repository

import (
	"context"
	"database/sql"

	"github.com/venuehub/venuehub-api/internal/model"
)

// ProviderRepo provides data access for provider self-service: the
// provider profile, the act-attached packages/media/availability rows and
// the submissions audit trail for public self-registrations.
type ProviderRepo struct {
	db *sql.DB
}

// NewProviderRepo returns a new ProviderRepo bound to the given database.
func NewProviderRepo(db *sql.DB) *ProviderRepo { return &ProviderRepo{db: db} }

// GetByUserID returns the provider profile owned by the given user.
func (r *ProviderRepo) GetByUserID(ctx context.Context, userID uint64) (model.Provider, error) {
	var p model.Provider
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, display_name, COALESCE(phone,''), COALESCE(website,''),
		        COALESCE(location,''), COALESCE(bio,''), status
		 FROM providers WHERE user_id=? LIMIT 1`,
		userID).Scan(&p.ID, &p.UserID, &p.DisplayName, &p.Phone, &p.Website, &p.Location, &p.Bio, &p.Status)
	return p, err
}

// Upsert creates the provider profile on first write and overwrites its
// fields afterwards.  New profiles start pending; an update never resets
// an approved status.
func (r *ProviderRepo) Upsert(ctx context.Context, p *model.Provider) error {
	existing, err := r.GetByUserID(ctx, p.UserID)
	if err == sql.ErrNoRows {
		p.Status = "pending"
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO providers (user_id, display_name, phone, website, location, bio, status) VALUES (?,?,?,?,?,?,?)",
			p.UserID, p.DisplayName, p.Phone, p.Website, p.Location, p.Bio, p.Status)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		p.ID = uint64(id)
		return nil
	}
	if err != nil {
		return err
	}
	p.ID = existing.ID
	p.Status = existing.Status
	_, err = r.db.ExecContext(ctx,
		"UPDATE providers SET display_name=?, phone=?, website=?, location=?, bio=? WHERE id=?",
		p.DisplayName, p.Phone, p.Website, p.Location, p.Bio, p.ID)
	return err
}

// ActExists reports whether an act with the given id exists.  Package,
// media and availability writes check this first so a dangling act_id is
// a clean 404 rather than a foreign key error.
func (r *ProviderRepo) ActExists(ctx context.Context, actID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM acts WHERE id=? LIMIT 1", actID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddPackage attaches a priced package to an act.
func (r *ProviderRepo) AddPackage(ctx context.Context, p *model.Package) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO packages (act_id, name, price, duration_mins, description) VALUES (?,?,?,?,?)",
		p.ActID, p.Name, p.Price, p.DurationMins, p.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// AddMedia attaches a gallery item to an act.
func (r *ProviderRepo) AddMedia(ctx context.Context, m *model.Media) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO media (act_id, url, media_type, sort) VALUES (?,?,?,?)",
		m.ActID, m.URL, m.MediaType, m.Sort)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// AddAvailability marks a date on an act's calendar.
func (r *ProviderRepo) AddAvailability(ctx context.Context, a *model.Availability) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO availability (act_id, date, is_available) VALUES (?,?,?)",
		a.ActID, a.Date, a.IsAvailable)
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

// RecordSubmission writes the audit row for a public self-registration
// after the listing it produced has been created.
func (r *ProviderRepo) RecordSubmission(ctx context.Context, s *model.Submission) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO submissions (kind, listing_id, submitter_name, status) VALUES (?,?,?,'pending')",
		s.Kind, s.ListingID, s.SubmitterName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = "pending"
	return nil
}

// ListSubmissions returns submissions newest first, optionally filtered
// by status ("" means all).  Admin surface.
func (r *ProviderRepo) ListSubmissions(ctx context.Context, status string) ([]model.Submission, error) {
	q := `SELECT id, kind, listing_id, COALESCE(submitter_name,''), status, created_at FROM submissions`
	args := []any{}
	if status != "" {
		q += " WHERE status = ?"
		args = append(args, status)
	}
	q += " ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Submission, 0)
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.Kind, &s.ListingID, &s.SubmitterName, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
