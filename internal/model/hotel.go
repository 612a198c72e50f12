package model

import "time"

// Hotel is a bookable property in the catalog. Availability is
// the number of units still reservable and is decremented by one
// for every placed order. Price is per night in cents.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – hotel name.
//  Type         – tier of the hotel (VIP, GOLD, PREMIUM, STANDARD).
//  Stars        – star rating, 1 to 5.
//  Description  – free-text description.
//  Address      – street address.
//  PriceCents   – nightly price in cents, never negative.
//  MaxOccupancy – maximum guests per unit, 1 to 4.
//  Availability – remaining bookable units, never negative at write time.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Hotel struct {
    ID           uint64    // hotels.id
    Name         string    // hotels.name
    Type         string    // hotels.type
    Stars        uint8     // hotels.stars
    Description  string    // hotels.description
    Address      string    // hotels.address
    PriceCents   int64     // hotels.price_cents
    MaxOccupancy uint8     // hotels.max_occupancy
    Availability int64     // hotels.availability
    CreatedAt    time.Time // hotels.created_at
    UpdatedAt    time.Time // hotels.updated_at
}

// Hotel tiers stored in hotels.type.
const (
    HotelTypeVIP      = "VIP"
    HotelTypeGold     = "GOLD"
    HotelTypePremium  = "PREMIUM"
    HotelTypeStandard = "STANDARD"
)

// ValidHotelType reports whether t is one of the known tiers.
func ValidHotelType(t string) bool {
    switch t {
    case HotelTypeVIP, HotelTypeGold, HotelTypePremium, HotelTypeStandard:
        return true
    }
    return false
}
