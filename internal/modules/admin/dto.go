package admin

import "sahayak/internal/domain"

type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type ProviderListResponse struct {
	Providers []domain.ServiceProvider `json:"providers"`
	Total     int64                    `json:"total"`
	Page      int                      `json:"page"`
	Limit     int                      `json:"limit"`
}

type StatisticsResponse struct {
	TotalUsers     int64                          `json:"total_users"`
	TotalProviders int64                          `json:"total_providers"`
	TotalBookings  int64                          `json:"total_bookings"`
	Bookings       map[domain.BookingStatus]int64 `json:"bookings"`
	PaidRevenue    float64                        `json:"paid_revenue"`
}
