package entity

import "time"

// Garment is a product reference (e.g. a jacket style). Operations and
// production orders are defined against a garment.
type Garment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Reference   string    `json:"reference" gorm:"size:64;not null;uniqueIndex"` // normalized upper-case
	Description string    `json:"description" gorm:"size:256"`
	Active      bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Operations []Operation `json:"operations,omitempty" gorm:"foreignKey:GarmentID"`
}

func (Garment) TableName() string {
	return "garments"
}
