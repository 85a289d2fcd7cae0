package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingAccepted, BookingCancelled},
	BookingAccepted:  {BookingCompleted},
	BookingCompleted: {},
	BookingCancelled: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s. Unknown statuses are terminal.
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// PriceEditable reports whether basePrice may change in this status.
func (s BookingStatus) PriceEditable() bool {
	return s == BookingAccepted
}

func (s BookingStatus) String() string {
	return string(s)
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

type Booking struct {
	Model
	UserID            string        `json:"user_id" gorm:"type:varchar(36);not null;index"`
	ServiceID         string        `json:"service_id" gorm:"type:varchar(36);not null;index"`
	ServiceCategoryID string        `json:"service_category_id" gorm:"type:varchar(36);not null;index"`
	ProviderID        *string       `json:"provider_id" gorm:"type:varchar(36);index"`
	Date              time.Time     `json:"date" gorm:"not null"`
	Status            BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	BasePrice         float64       `json:"base_price" gorm:"not null"`

	OrderID           *string    `json:"order_id,omitempty" gorm:"type:varchar(64);uniqueIndex"`
	PaymentID         *string    `json:"payment_id,omitempty" gorm:"type:varchar(64)"`
	PaymentSignature  *string    `json:"-" gorm:"type:varchar(128)"`
	IsPaid            bool       `json:"is_paid" gorm:"not null"`
	PaymentVerifiedAt *time.Time `json:"payment_verified_at,omitempty"`

	User     *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Service  *Service         `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Provider *ServiceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Rating   *Rating          `json:"rating,omitempty" gorm:"foreignKey:BookingID"`
}

// BookingGuard is the precondition of a conditional booking update.
// Empty fields are not checked.
type BookingGuard struct {
	Status     BookingStatus
	ProviderID string
	UserID     string
}

// Allows reports whether b currently satisfies g.
func (g BookingGuard) Allows(b *Booking) bool {
	if g.Status != "" && b.Status != g.Status {
		return false
	}
	if g.UserID != "" && b.UserID != g.UserID {
		return false
	}
	if g.ProviderID != "" && (b.ProviderID == nil || *b.ProviderID != g.ProviderID) {
		return false
	}
	return true
}

// IsAssignedTo reports whether providerID is the booking's accepted provider.
func (b *Booking) IsAssignedTo(providerID string) bool {
	return b.ProviderID != nil && *b.ProviderID == providerID
}
