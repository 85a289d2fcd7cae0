package rating

import "sahayak/internal/domain"

// RatingRequest decodes stars into *int so fractional JSON numbers fail binding.
type RatingRequest struct {
	Stars  *int   `json:"stars" binding:"required"`
	Review string `json:"review" binding:"max=2000"`
}

type CheckResult struct {
	HasReviewed bool           `json:"has_reviewed"`
	Review      *domain.Rating `json:"review,omitempty"`
}

type ProviderRatings struct {
	Average float64         `json:"average"`
	Count   int64           `json:"count"`
	Ratings []domain.Rating `json:"ratings"`
}
