package model

import "time"

// Review moderation states.  Submissions always enter the queue as
// pending; an admin moves them to approved or rejected, both terminal.
const (
    ReviewStatusPending  = "pending"
    ReviewStatusApproved = "approved"
    ReviewStatusRejected = "rejected"
)

// Review is a user-submitted rating for an act or venue.  Rating is
// clamped to [1,5] at submission regardless of the caller-supplied
// value.  Response holds optional admin commentary set at moderation.
type Review struct {
    ID         uint64    `json:"id"`
    AuthorName string    `json:"author_name"`
    Rating     int       `json:"rating"`
    Comment    string    `json:"comment"`
    ActID      *uint64   `json:"act_id"`
    VenueID    *uint64   `json:"venue_id"`
    Status     string    `json:"status"`
    Response   string    `json:"response,omitempty"`
    CreatedAt  time.Time `json:"created_at"`
}

// Submission is the audit record of a provider self-registration.  The
// payload itself is validated as a typed act or venue submission at the
// HTTP boundary and materialized straight into the listing tables; the
// submissions row only tracks what was created and its vetting status.
type Submission struct {
    ID            uint64    `json:"id"`
    Kind          string    `json:"kind"` // "act" or "venue"
    ListingID     uint64    `json:"listing_id"`
    SubmitterName string    `json:"submitter_name"`
    Status        string    `json:"status"`
    CreatedAt     time.Time `json:"created_at"`
}
