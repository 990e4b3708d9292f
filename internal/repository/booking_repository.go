package repository

import (
    "context"
    "database/sql"

    "github.com/venuehub/venuehub-api/internal/model"
)

// BookingRepo provides data access to the bookings table.  Bookings are
// written once by anonymous enquiry traffic and never updated; every
// booking is created together with its lead in one transaction.
type BookingRepo struct {
    db    *sql.DB
    leads *LeadRepo
}

// NewBookingRepo returns a BookingRepo bound to the given database and
// lead repository.
func NewBookingRepo(db *sql.DB, leads *LeadRepo) *BookingRepo {
    return &BookingRepo{db: db, leads: leads}
}

// CreateWithLead inserts a booking and its lead as a single unit.  When
// the lead insert fails the booking insert rolls back with it, so a
// booking without a lead can never become visible.  It returns the new
// booking and the id of its lead.
func (r *BookingRepo) CreateWithLead(ctx context.Context, b *model.Booking) (uint64, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    res, err := tx.ExecContext(ctx,
        "INSERT INTO bookings (customer_name, customer_email, date, message, act_id, venue_id) VALUES (?,?,?,?,?,?)",
        b.CustomerName, b.CustomerEmail, b.Date, b.Message, b.ActID, b.VenueID)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    b.ID = uint64(id)

    leadID, err := r.leads.CreateTx(ctx, tx, b.ID)
    if err != nil {
        return 0, err
    }

    // Read back server-side defaults (created_at).
    if err := tx.QueryRowContext(ctx,
        "SELECT created_at FROM bookings WHERE id = ?", b.ID).Scan(&b.CreatedAt); err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return leadID, nil
}

// ListAll returns every booking, newest first.  Admin-only surface.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, customer_name, customer_email, date, COALESCE(message,''), act_id, venue_id, created_at
         FROM bookings ORDER BY id DESC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        var actID, venueID sql.NullInt64
        if err := rows.Scan(&b.ID, &b.CustomerName, &b.CustomerEmail, &b.Date, &b.Message, &actID, &venueID, &b.CreatedAt); err != nil {
            return nil, err
        }
        if actID.Valid {
            v := uint64(actID.Int64)
            b.ActID = &v
        }
        if venueID.Valid {
            v := uint64(venueID.Int64)
            b.VenueID = &v
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Delete removes a booking and its lead.  sql.ErrNoRows when the booking
// does not exist.  The lead goes first to satisfy the foreign key.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if _, err := tx.ExecContext(ctx, "DELETE FROM leads WHERE booking_id = ?", id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
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
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
