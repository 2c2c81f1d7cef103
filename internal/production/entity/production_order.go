package entity

import "time"

// ProductionOrder is a manufacturing batch of one garment/color/size
// combination. OrderNumber is generated sequentially per year: ORD-YYYY-NNN.
type ProductionOrder struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OrderNumber   string    `json:"order_number" gorm:"size:32;not null;uniqueIndex"`
	GarmentID     uint      `json:"garment_id" gorm:"not null;index"`
	Color         string    `json:"color" gorm:"size:64"`
	Size          string    `json:"size" gorm:"size:32"`
	TotalQuantity int       `json:"total_quantity" gorm:"not null"`
	EntryDate     time.Time `json:"entry_date" gorm:"type:date;not null"`
	Active        bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Garment *Garment `json:"garment,omitempty" gorm:"foreignKey:GarmentID"`
}

func (ProductionOrder) TableName() string {
	return "production_orders"
}

// OrderProgress is the derived fulfillment state of an order. Completed is
// the minimum completed quantity across the garment's operations: a piece
// only counts as finished once every required operation has been performed
// on it.
type OrderProgress struct {
	OrderID      uint           `json:"order_id"`
	Total        int            `json:"total"`
	Completed    int            `json:"completed"`
	Percentage   int            `json:"percentage"`
	PerOperation []OperationSum `json:"per_operation"`
}

// OperationSum is the completed quantity of one required operation.
type OperationSum struct {
	OperationID   uint   `json:"operation_id"`
	OperationName string `json:"operation_name"`
	Completed     int    `json:"completed"`
}
