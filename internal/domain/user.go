package domain

type Role string

const (
	RoleUser     Role = "USER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

type AccountStatus string

const (
	StatusActive  AccountStatus = "ACTIVE"
	StatusBlocked AccountStatus = "BLOCKED"
)

func (s AccountStatus) IsValid() bool {
	return s == StatusActive || s == StatusBlocked
}

// User is a customer or an admin. Providers live in their own table.
type User struct {
	Model
	Name         string        `json:"name" gorm:"size:120;not null"`
	Email        string        `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Phone        string        `json:"phone,omitempty" gorm:"size:32"`
	Role         Role          `json:"role" gorm:"type:varchar(16);not null"`
	Status       AccountStatus `json:"status" gorm:"type:varchar(16);not null;index"`
}
