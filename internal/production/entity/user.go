package entity

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is a backend login, not a factory worker (see Employee).
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
	Name         string    `json:"name" gorm:"size:128"`
	Role         string    `json:"role" gorm:"size:20;not null;default:operator"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
