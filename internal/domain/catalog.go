package domain

type ServiceCategory struct {
	Model
	Name        string `json:"name" gorm:"size:120;not null;uniqueIndex"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Service is a catalog entry customers book against.
type Service struct {
	Model
	Name        string           `json:"name" gorm:"size:160;not null"`
	Description string           `json:"description,omitempty" gorm:"type:text"`
	Price       float64          `json:"price" gorm:"not null"`
	CategoryID  string           `json:"category_id" gorm:"type:varchar(36);not null;index"`
	Category    *ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
