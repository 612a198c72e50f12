package model

import "time"

// Profile holds the personal data a user fills in after
// registering. One profile exists per user; it is created empty
// at registration time and completed later. An incomplete
// profile blocks access to the hotel catalog and to reservations.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user's ID (unique).
//  Name      – first name.
//  Lastname  – family name.
//  BirthDate – date of birth (YYYY-MM-DD, empty until filled in).
//  Address   – street address.
//  City      – city of residence.
//  Country   – country of residence.
//  UpdatedAt – timestamp of last update.
type Profile struct {
    ID        uint64    // profiles.id
    UserID    uint64    // profiles.user_id
    Name      string    // profiles.name
    Lastname  string    // profiles.lastname
    BirthDate string    // profiles.birth_date (DATE, empty when NULL)
    Address   string    // profiles.address
    City      string    // profiles.city
    Country   string    // profiles.country
    UpdatedAt time.Time // profiles.updated_at
}

// IsComplete reports whether all six profile fields are non-empty.
// Catalog browsing and order creation are gated on this.
func (p Profile) IsComplete() bool {
    return p.Name != "" && p.Lastname != "" && p.BirthDate != "" &&
        p.Address != "" && p.City != "" && p.Country != ""
}
