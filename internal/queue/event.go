// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published when a reservation order is successfully
// placed. It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type OrderPlacedEvent struct {
    OrderID          uint64 `json:"order_id"`
    UserID           uint64 `json:"user_id"`
    HotelID          uint64 `json:"hotel_id"`
    HotelName        string `json:"hotel_name"`
    CheckIn          string `json:"check_in"`
    CheckOut         string `json:"check_out"`
    Nights           int64  `json:"nights"`
    TotalAmountCents int64  `json:"total_amount_cents"`
    PlacedAt         string `json:"placed_at"`
}
