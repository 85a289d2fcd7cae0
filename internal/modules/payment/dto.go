package payment

type OrderResponse struct {
	BookingID    string `json:"booking_id"`
	OrderID      string `json:"order_id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Gateway      string `json:"gateway"`
	KeyID        string `json:"key_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// VerifyRequest carries the checkout result under the gateway's field names,
// for both JSON bodies and the callback form.
type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id" form:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" form:"razorpay_signature"`
}

// PaidEvent is relayed once a payment is verified.
type PaidEvent struct {
	BookingID  string  `json:"booking_id"`
	UserID     string  `json:"user_id"`
	ProviderID *string `json:"provider_id,omitempty"`
	OrderID    string  `json:"order_id"`
	PaymentID  string  `json:"payment_id"`
	Amount     float64 `json:"amount"`
}
