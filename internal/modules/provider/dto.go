package provider

import "sahayak/internal/domain"

type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,max=120"`
	Phone      *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Experience *int    `json:"experience,omitempty" binding:"omitempty,min=0,max=80"`
}

type PublicProfile struct {
	Provider      *domain.ServiceProvider `json:"provider"`
	ServiceIDs    []string                `json:"service_ids"`
	AverageRating float64                 `json:"average_rating"`
	RatingCount   int64                   `json:"rating_count"`
}

type ListResponse struct {
	Providers []domain.ServiceProvider `json:"providers"`
	Total     int64                    `json:"total"`
	Page      int                      `json:"page"`
	Limit     int                      `json:"limit"`
}
