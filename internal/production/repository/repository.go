package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories bundles all production repositories.
type Repositories struct {
	Employee   *EmployeeRepository
	Garment    *GarmentRepository
	Operation  *OperationRepository
	Order      *OrderRepository
	Assignment *AssignmentRepository
	Remission  *RemissionRepository
	User       *UserRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Employee:   NewEmployeeRepository(db),
		Garment:    NewGarmentRepository(db),
		Operation:  NewOperationRepository(db),
		Order:      NewOrderRepository(db),
		Assignment: NewAssignmentRepository(db),
		Remission:  NewRemissionRepository(db),
		User:       NewUserRepository(db),
	}
}
