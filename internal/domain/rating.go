package domain

const (
	MinStars = 1
	MaxStars = 5
)

// Rating is the single review a customer leaves on a completed booking.
type Rating struct {
	Model
	BookingID  string `json:"booking_id" gorm:"type:varchar(36);not null;uniqueIndex"`
	UserID     string `json:"user_id" gorm:"type:varchar(36);not null;index"`
	ProviderID string `json:"provider_id" gorm:"type:varchar(36);not null;index"`
	ServiceID  string `json:"service_id" gorm:"type:varchar(36);not null;index"`
	Stars      int    `json:"stars" gorm:"not null"`
	Review     string `json:"review,omitempty" gorm:"type:text"`
}

func ValidStars(n int) bool {
	return n >= MinStars && n <= MaxStars
}
