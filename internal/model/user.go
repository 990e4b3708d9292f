package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Roles are three independent boolean flags rather than a single
// role column: an account may simultaneously be an admin, a provider and
// a business.  Flags are set at registration and never change afterwards.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, lowercased email address.
//  PasswordHash – bcrypt hashed password.
//  IsAdmin      – platform administrator flag.
//  IsProvider   – act/venue provider flag.
//  IsBusiness   – business (lead buyer) flag.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    IsAdmin      bool      // users.is_admin
    IsProvider   bool      // users.is_provider
    IsBusiness   bool      // users.is_business
    CreatedAt    time.Time // users.created_at
}

// Business is the commercial profile attached one-to-one to a user with
// the business role.  LeadCredits is the consumable balance spent to
// unlock customer contact details on leads; it must never go negative.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user (unique).
//  Company     – company name.
//  ContactName – contact person.
//  Phone       – contact phone.
//  Website     – company website.
//  Plan        – subscription plan name (default "free").
//  LeadCredits – remaining lead unlock credits.
//  CreatedAt   – timestamp of creation.
type Business struct {
    ID          uint64    // businesses.id
    UserID      uint64    // businesses.user_id
    Company     string    // businesses.company
    ContactName string    // businesses.contact_name
    Phone       string    // businesses.phone
    Website     string    // businesses.website
    Plan        string    // businesses.plan
    LeadCredits int       // businesses.lead_credits
    CreatedAt   time.Time // businesses.created_at
}

// Provider is the self-service profile of a user who lists acts or
// venues.  New profiles start in "pending" status until vetted.
type Provider struct {
    ID          uint64 // providers.id
    UserID      uint64 // providers.user_id
    DisplayName string // providers.display_name
    Phone       string // providers.phone
    Website     string // providers.website
    Location    string // providers.location
    Bio         string // providers.bio
    Status      string // providers.status ("pending" until approved)
}
