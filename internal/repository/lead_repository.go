package repository

import (
    "context"
    "database/sql"
    "time"
)

// LeadRepo provides data access to the leads table and implements the
// credit-gated unlock state machine.  A lead is Locked while
// unlocked_by_business_id is NULL and permanently Unlocked(by business)
// afterwards; there is no transition back.
type LeadRepo struct {
    db *sql.DB
}

// NewLeadRepo returns a new LeadRepo bound to the given database.
func NewLeadRepo(db *sql.DB) *LeadRepo { return &LeadRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *LeadRepo) DB() *sql.DB { return r.db }

// LeadRow joins a lead with its booking for the business lead list.  The
// customer email here is always the real one; the handler substitutes the
// redaction placeholder for leads the calling business has not unlocked.
type LeadRow struct {
    LeadID               uint64
    BookingID            uint64
    CustomerName         string
    CustomerEmail        string
    Date                 string
    Message              string
    ActID                *uint64
    VenueID              *uint64
    UnlockedByBusinessID *uint64
    CreatedAt            time.Time
}

// CreateTx inserts the lead for a freshly captured booking.  It runs
// inside the booking's transaction: if the lead cannot be written the
// booking insert rolls back with it, so no booking exists without a lead.
func (r *LeadRepo) CreateTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint64, error) {
    res, err := tx.ExecContext(ctx, "INSERT INTO leads (booking_id) VALUES (?)", bookingID)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// ListWithBookings returns every lead joined with its booking, newest
// first.  Businesses see all leads; only the email visibility differs per
// caller, which is decided in the handler.
func (r *LeadRepo) ListWithBookings(ctx context.Context) ([]LeadRow, error) {
    const q = `SELECT l.id, b.id, b.customer_name, b.customer_email, b.date,
                      COALESCE(b.message,''), b.act_id, b.venue_id,
                      l.unlocked_by_business_id, b.created_at
               FROM leads l
               JOIN bookings b ON b.id = l.booking_id
               ORDER BY l.id DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]LeadRow, 0)
    for rows.Next() {
        var lr LeadRow
        var actID, venueID, unlockedBy sql.NullInt64
        if err := rows.Scan(
            &lr.LeadID, &lr.BookingID, &lr.CustomerName, &lr.CustomerEmail, &lr.Date,
            &lr.Message, &actID, &venueID, &unlockedBy, &lr.CreatedAt,
        ); err != nil {
            return nil, err
        }
        if actID.Valid {
            v := uint64(actID.Int64)
            lr.ActID = &v
        }
        if venueID.Valid {
            v := uint64(venueID.Int64)
            lr.VenueID = &v
        }
        if unlockedBy.Valid {
            v := uint64(unlockedBy.Int64)
            lr.UnlockedByBusinessID = &v
        }
        out = append(out, lr)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Unlock spends one credit of the given business to reveal the lead's
// customer contact.  Everything happens in a single transaction with row
// locks on both the lead and the business so two concurrent unlocks can
// never both observe a positive balance and drive it negative:
//
//   1. sql.ErrNoRows when the lead does not exist.
//   2. Re-unlocking a lead this business already owns is a free no-op.
//   3. ErrAlreadyUnlocked when a different business owns the lead.
//   4. ErrInsufficientCredits when the balance is zero; nothing changes.
//   5. Otherwise the owner is recorded and the balance decremented,
//      atomically.
//
// It returns the business's credit balance after the call.
func (r *LeadRepo) Unlock(ctx context.Context, businessID, leadID uint64) (int, error) {
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

    // Lock the lead row first; its unlock state decides whether a credit
    // is spent at all.
    var unlockedBy sql.NullInt64
    err = tx.QueryRowContext(ctx,
        "SELECT unlocked_by_business_id FROM leads WHERE id = ? FOR UPDATE",
        leadID).Scan(&unlockedBy)
    if err != nil {
        return 0, err // includes sql.ErrNoRows for a missing lead
    }

    // Lock the business row to pin the balance for the rest of the tx.
    var credits int
    err = tx.QueryRowContext(ctx,
        "SELECT lead_credits FROM businesses WHERE id = ? FOR UPDATE",
        businessID).Scan(&credits)
    if err != nil {
        return 0, err
    }

    if unlockedBy.Valid {
        if uint64(unlockedBy.Int64) == businessID {
            // Idempotent repeat by the owner: success, no second charge.
            if err := tx.Commit(); err != nil {
                return 0, err
            }
            committed = true
            return credits, nil
        }
        return 0, ErrAlreadyUnlocked
    }

    if credits <= 0 {
        return 0, ErrInsufficientCredits
    }

    if _, err := tx.ExecContext(ctx,
        "UPDATE leads SET unlocked_by_business_id = ? WHERE id = ?",
        businessID, leadID); err != nil {
        return 0, err
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE businesses SET lead_credits = lead_credits - 1 WHERE id = ?",
        businessID); err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return credits - 1, nil
}
