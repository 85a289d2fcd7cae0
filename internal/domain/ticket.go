package domain

type TicketStatus string

const (
	TicketOpen     TicketStatus = "OPEN"
	TicketPending  TicketStatus = "PENDING"
	TicketResolved TicketStatus = "RESOLVED"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketOpen, TicketPending, TicketResolved:
		return true
	}
	return false
}

// Ticket is a support request raised by either a user or a provider.
// Exactly one of UserID and ProviderID is set.
type Ticket struct {
	Model
	Subject     string       `json:"subject" gorm:"size:200;not null"`
	Description string       `json:"description" gorm:"type:text;not null"`
	Status      TicketStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	BookingID   *string      `json:"booking_id,omitempty" gorm:"type:varchar(36);index"`
	UserID      *string      `json:"user_id,omitempty" gorm:"type:varchar(36);index"`
	ProviderID  *string      `json:"provider_id,omitempty" gorm:"type:varchar(36);index"`
	Booking     *Booking     `json:"-" gorm:"foreignKey:BookingID"`
}
