package booking

import "time"

type CreateBookingRequest struct {
	ServiceID string    `json:"service_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	BasePrice *float64  `json:"base_price"`
}

type UpdatePriceRequest struct {
	Price *float64 `json:"price" binding:"required"`
}

// StatusEvent is relayed on every booking transition.
type StatusEvent struct {
	BookingID  string  `json:"booking_id"`
	UserID     string  `json:"user_id"`
	ProviderID *string `json:"provider_id,omitempty"`
	Status     string  `json:"status"`
	BasePrice  float64 `json:"base_price"`
}
