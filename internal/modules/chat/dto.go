package chat

import "time"

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// MessageEvent is what the realtime server receives on send-message.
type MessageEvent struct {
	BookingID   string    `json:"booking_id"`
	MessageID   string    `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	SenderRole  string    `json:"sender_role"`
	RecipientID string    `json:"recipient_id,omitempty"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sent_at"`
}
