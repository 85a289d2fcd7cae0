package auth

import "sahayak/internal/domain"

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterProviderRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=120"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"omitempty,max=32"`
	Password   string `json:"password" binding:"required,min=6"`
	CategoryID string `json:"category_id" binding:"required"`
	Experience int    `json:"experience" binding:"min=0,max=80"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult carries either User or Provider, never both.
type AuthResult struct {
	Token          string                  `json:"token"`
	Role           domain.Role             `json:"role"`
	User           *domain.User            `json:"user,omitempty"`
	Provider       *domain.ServiceProvider `json:"provider,omitempty"`
	LinkedServices int                     `json:"linked_services,omitempty"`
}

type MeResponse struct {
	Role     domain.Role             `json:"role"`
	User     *domain.User            `json:"user,omitempty"`
	Provider *domain.ServiceProvider `json:"provider,omitempty"`
}
