package entity

import "time"

// Remission is a shipment record against an order's completed stock.
// Cumulative dispatched quantity across a given order's active remissions
// never exceeds the order's completed quantity.
type Remission struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	OrderID            uint      `json:"order_id" gorm:"not null;index"`
	DispatchedQuantity int       `json:"dispatched_quantity" gorm:"not null"`
	DispatchDate       time.Time `json:"dispatch_date" gorm:"type:date;not null"`
	Observations       string    `json:"observations" gorm:"type:text"`
	Active             bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Order *ProductionOrder `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (Remission) TableName() string {
	return "remissions"
}
