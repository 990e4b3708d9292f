// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when an enquiry and its lead have been
// captured.  It carries enough for downstream consumers to log or notify
// without querying the primary database.  The customer email is omitted
// on purpose: it is paid content and only leaves the store through an
// unlocked lead view.
type BookingCreatedEvent struct {
    BookingID    uint64  `json:"booking_id"`
    LeadID       uint64  `json:"lead_id"`
    CustomerName string  `json:"customer_name"`
    Date         string  `json:"date"`
    ActID        *uint64 `json:"act_id,omitempty"`
    VenueID      *uint64 `json:"venue_id,omitempty"`
    CreatedAt    string  `json:"created_at"`
}

// LeadUnlockedEvent is published when a business spends a credit to
// unlock a lead.
type LeadUnlockedEvent struct {
    LeadID           uint64 `json:"lead_id"`
    BusinessID       uint64 `json:"business_id"`
    RemainingCredits int    `json:"remaining_credits"`
    UnlockedAt       string `json:"unlocked_at"`
}
