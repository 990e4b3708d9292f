package model

import "time"

// Booking is a customer enquiry against an act or a venue.  Bookings are
// created by anonymous public traffic, are immutable once written and
// belong to no user.  At least one of ActID/VenueID is always set.
//
// Fields:
//  ID            – primary key identifier.
//  CustomerName  – name supplied by the enquiring customer.
//  CustomerEmail – contact email; only revealed to a business after it
//                  unlocks the associated lead.
//  Date          – requested event date (free-form YYYY-MM-DD).
//  Message       – free-text enquiry message.
//  ActID         – referenced act, nil when the enquiry targets a venue.
//  VenueID       – referenced venue, nil when the enquiry targets an act.
//  CreatedAt     – timestamp of creation.
type Booking struct {
    ID            uint64    // bookings.id
    CustomerName  string    // bookings.customer_name
    CustomerEmail string    // bookings.customer_email
    Date          string    // bookings.date
    Message       string    // bookings.message
    ActID         *uint64   // bookings.act_id (nullable)
    VenueID       *uint64   // bookings.venue_id (nullable)
    CreatedAt     time.Time // bookings.created_at
}

// Lead wraps a booking as a monetizable sales opportunity.  Every booking
// gets exactly one lead, created in the same transaction.  A lead is
// Locked while UnlockedByBusinessID is nil; once a business spends a
// credit the id is recorded and never changes again.
type Lead struct {
    ID                   uint64  // leads.id
    BookingID            uint64  // leads.booking_id
    UnlockedByBusinessID *uint64 // leads.unlocked_by_business_id (nullable, monotonic)
}
