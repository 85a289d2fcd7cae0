package domain

// Message is one chat line exchanged on a booking.
type Message struct {
	Model
	BookingID  string   `json:"booking_id" gorm:"type:varchar(36);not null;index"`
	SenderID   string   `json:"sender_id" gorm:"type:varchar(36);not null"`
	SenderRole Role     `json:"sender_role" gorm:"type:varchar(16);not null"`
	Body       string   `json:"body" gorm:"type:text;not null"`
	Booking    *Booking `json:"-" gorm:"foreignKey:BookingID"`
}
