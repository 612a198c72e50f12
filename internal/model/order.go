package model

import "time"

// Order records a reservation: which profile booked which hotel
// for which date range, plus a status moved forward by admins.
// Every order owns exactly one AdminDetails row, created together
// with the order (details first, then the order referencing them).
// Hotel and client references are nullified when the referenced
// row is deleted; the order itself survives.
//
// Fields:
//  ID             – primary key identifier.
//  ClientID       – profile of the booking user (nullable after profile delete).
//  HotelID        – booked hotel (nullable after hotel delete).
//  CheckIn        – check-in date (YYYY-MM-DD).
//  CheckOut       – check-out date, strictly after CheckIn.
//  TotalCents     – nights × nightly price at booking time.
//  Status         – ORDERED, PREPARING or READY.
//  AdminDetailsID – owned admin_details row (cascade delete).
//  CreatedAt      – auto-stamped creation timestamp.
type Order struct {
    ID             uint64    // orders.id
    ClientID       *uint64   // orders.client_id (nullable)
    HotelID        *uint64   // orders.hotel_id (nullable)
    CheckIn        string    // orders.check_in (DATE)
    CheckOut       string    // orders.check_out (DATE)
    TotalCents     int64     // orders.total_cents
    Status         string    // orders.status
    AdminDetailsID uint64    // orders.admin_details_id
    CreatedAt      time.Time // orders.created_at
}

// Order statuses stored in orders.status.
const (
    OrderStatusOrdered   = "ORDERED"
    OrderStatusPreparing = "PREPARING"
    OrderStatusReady     = "READY"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
    switch s {
    case OrderStatusOrdered, OrderStatusPreparing, OrderStatusReady:
        return true
    }
    return false
}

// AdminDetails is the operational metadata an administrator
// attaches to an order: room assignment, floor and a free-form
// status note. It is created automatically with placeholder
// values when the order is placed and edited only by admins.
//
// Fields:
//  ID         – primary key identifier.
//  ClientID   – profile of the booking user (nullable).
//  RoomNumber – assigned room, never negative.
//  Floor      – assigned floor, never negative.
//  StatusNote – free-form note, "awaiting confirmation" by default.
type AdminDetails struct {
    ID         uint64  // admin_details.id
    ClientID   *uint64 // admin_details.client_id (nullable)
    RoomNumber int32   // admin_details.room_number
    Floor      int32   // admin_details.floor
    StatusNote string  // admin_details.status_note
}

// DefaultStatusNote is the placeholder written into a fresh
// AdminDetails row at order creation.
const DefaultStatusNote = "awaiting confirmation"
