package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/telaris/confetrack/internal/config"
	"github.com/telaris/confetrack/internal/production/repository"
	"gorm.io/gorm"
)

// Services bundles all production services.
type Services struct {
	Auth       *AuthService
	Employee   *EmployeeService
	Garment    *GarmentService
	Operation  *OperationService
	Order      *OrderService
	Assignment *AssignmentService
	Progress   *ProgressService
	Payroll    *PayrollService
	Remission  *RemissionService
	Dashboard  *DashboardService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Services {
	progress := NewProgressService(db, repos.Order, repos.Operation, repos.Assignment)
	return &Services{
		Auth:       NewAuthService(repos.User, rdb, cfg),
		Employee:   NewEmployeeService(repos.Employee),
		Garment:    NewGarmentService(repos.Garment),
		Operation:  NewOperationService(repos.Operation, repos.Garment),
		Order:      NewOrderService(repos.Order, repos.Garment),
		Assignment: NewAssignmentService(repos.Assignment, repos.Order, repos.Operation, repos.Employee, db),
		Progress:   progress,
		Payroll:    NewPayrollService(db),
		Remission:  NewRemissionService(repos.Remission, repos.Order, progress, db),
		Dashboard:  NewDashboardService(db, rdb, progress, repos.Order),
	}
}
