package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is a discrete piece-rate task ("sew collar") tied to one garment.
// Cost is the rate paid per finished piece.
type Operation struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:128;not null"`
	Cost      decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);not null"`
	GarmentID uint            `json:"garment_id" gorm:"not null;index"`
	Active    bool            `json:"active" gorm:"not null;default:true;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Garment *Garment `json:"garment,omitempty" gorm:"foreignKey:GarmentID"`
}

func (Operation) TableName() string {
	return "operations"
}
