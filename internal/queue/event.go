// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published when a checkout completes and an order is
// recorded. It carries enough context for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type OrderPlacedEvent struct {
	OrderID       uint64  `json:"order_id"`
	RequestID     uint64  `json:"request_id"`
	ListingID     uint64  `json:"listing_id"`
	BuyerID       uint64  `json:"buyer_id"`
	SellerID      uint64  `json:"seller_id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	PaymentMethod string  `json:"payment_method"`
	PlacedAt      string  `json:"placed_at"`
}
