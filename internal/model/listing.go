package model

// Act is a bookable performer listing.  Featured and Premium are
// promotion flags used only for sort-order tie-breaking on public
// listings; they never gate access.
//
// Fields:
//  ID          – primary key identifier.
//  Slug        – unique URL slug derived from the name.
//  Name        – display name.
//  ActType     – kind of act (band, DJ, magician, ...).
//  Location    – home location.
//  PriceFrom   – starting price, nil when unquoted.
//  Rating      – aggregate rating, nil before first review.
//  Genres      – comma-separated genre list.
//  ImageURL    – cover image.
//  VideoURL    – showreel video.
//  Description – free-text description.
//  Featured    – editorial promotion flag.
//  Premium     – paid promotion flag.
type Act struct {
    ID          uint64   `json:"id"`
    Slug        string   `json:"slug"`
    Name        string   `json:"name"`
    ActType     string   `json:"act_type"`
    Location    string   `json:"location"`
    PriceFrom   *float64 `json:"price_from"`
    Rating      *float64 `json:"rating"`
    Genres      string   `json:"genres"`
    ImageURL    string   `json:"image_url"`
    VideoURL    string   `json:"video_url"`
    Description string   `json:"description"`
    Featured    bool     `json:"featured"`
    Premium     bool     `json:"premium"`
}

// Venue is a bookable location listing.  The promotion flags behave
// exactly as on Act.
type Venue struct {
    ID        uint64   `json:"id"`
    Slug      string   `json:"slug"`
    Name      string   `json:"name"`
    Location  string   `json:"location"`
    Capacity  *int     `json:"capacity"`
    PriceFrom *float64 `json:"price_from"`
    Style     string   `json:"style"`
    ImageURL  string   `json:"image_url"`
    Amenities string   `json:"amenities"`
    Featured  bool     `json:"featured"`
    Premium   bool     `json:"premium"`
}

// Package is a priced offering attached to an act (e.g. "2x45min sets").
type Package struct {
    ID           uint64  `json:"id"`
    ActID        uint64  `json:"act_id"`
    Name         string  `json:"name"`
    Price        float64 `json:"price"`
    DurationMins *int    `json:"duration_mins"`
    Description  string  `json:"description"`
}

// Media is an image or video attached to an act's gallery.
type Media struct {
    ID        uint64 `json:"id"`
    ActID     uint64 `json:"act_id"`
    URL       string `json:"url"`
    MediaType string `json:"media_type"` // "image" or "video"
    Sort      int    `json:"sort"`
}

// Availability marks a single date on an act's calendar.
type Availability struct {
    ID          uint64 `json:"id"`
    ActID       uint64 `json:"act_id"`
    Date        string `json:"date"` // YYYY-MM-DD
    IsAvailable bool   `json:"is_available"`
}
