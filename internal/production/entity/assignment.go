package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment is one unit of work: "employee X performs operation Y on Z
// pieces of order W". Amount is the operation cost times quantity, repriced
// whenever a split changes the quantity. Assignments carry no active flag:
// deleting one is a real row delete, unlike the master entities.
type Assignment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	EmployeeID    uint            `json:"employee_id" gorm:"not null;index"`
	GarmentID     uint            `json:"garment_id" gorm:"not null"`
	OperationID   uint            `json:"operation_id" gorm:"not null;index:idx_assignments_order_op"`
	OrderID       uint            `json:"order_id" gorm:"not null;index:idx_assignments_order_op"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	Size          string          `json:"size" gorm:"size:32"`
	Color         string          `json:"color" gorm:"size:64"`
	AssignedDate  time.Time       `json:"assigned_date" gorm:"type:date;not null"`
	Completed     bool            `json:"completed" gorm:"not null;default:false;index"`
	CompletedDate *time.Time      `json:"completed_date" gorm:"type:date"` // set iff Completed
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Employee  *Employee        `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Operation *Operation       `json:"operation,omitempty" gorm:"foreignKey:OperationID"`
	Order     *ProductionOrder `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (Assignment) TableName() string {
	return "assignments"
}
