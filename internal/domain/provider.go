package domain

// ServiceProvider is a professional specialized in exactly one category.
type ServiceProvider struct {
	Model
	Name         string           `json:"name" gorm:"size:120;not null"`
	Email        string           `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string           `json:"-" gorm:"not null"`
	Phone        string           `json:"phone,omitempty" gorm:"size:32"`
	CategoryID   string           `json:"category_id" gorm:"type:varchar(36);not null;index"`
	Experience   int              `json:"experience"`
	ImageURL     string           `json:"image_url,omitempty"`
	Status       AccountStatus    `json:"status" gorm:"type:varchar(16);not null;index"`
	Category     *ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// ServiceProviderService links a provider to every service of their category.
type ServiceProviderService struct {
	Model
	ProviderID string           `json:"provider_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_provider_service"`
	ServiceID  string           `json:"service_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_provider_service;index"`
	Provider   *ServiceProvider `json:"-" gorm:"foreignKey:ProviderID"`
	Service    *Service         `json:"-" gorm:"foreignKey:ServiceID"`
}
