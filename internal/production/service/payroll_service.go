package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayrollService aggregates piece-rate earnings over completed assignments.
// Only work completed inside the requested window pays out, keyed by the
// completion date, both endpoints inclusive.
type PayrollService struct {
	db *gorm.DB
}

func NewPayrollService(db *gorm.DB) *PayrollService {
	return &PayrollService{db: db}
}

type PayrollLine struct {
	EmployeeID     uint            `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	OperationCount int             `json:"operation_count"`
	Pieces         int             `json:"pieces"`
	Amount         decimal.Decimal `json:"amount"`
}

type PayrollSummary struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	Lines           []PayrollLine   `json:"lines"`
	TotalOperations int             `json:"total_operations"`
	TotalPieces     int             `json:"total_pieces"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// Compute builds the payroll for [from, to]. Employees whose window total is
// zero are left out.
func (s *PayrollService) Compute(ctx context.Context, from, to time.Time) (*PayrollSummary, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes start", ErrInvalidQuantity)
	}

	var rows []PayrollLine
	err := s.db.WithContext(ctx).Raw(`
		SELECT a.employee_id,
		       e.name AS employee_name,
		       COUNT(*) AS operation_count,
		       COALESCE(SUM(a.quantity), 0) AS pieces,
		       COALESCE(SUM(a.amount), 0) AS amount
		FROM assignments a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.completed = true
		  AND a.completed_date BETWEEN ? AND ?
		GROUP BY a.employee_id, e.name
		HAVING SUM(a.amount) > 0
		ORDER BY e.name`,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &PayrollSummary{
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		Lines:       rows,
		TotalAmount: decimal.Zero,
	}
	for _, line := range rows {
		summary.TotalOperations += line.OperationCount
		summary.TotalPieces += line.Pieces
		summary.TotalAmount = summary.TotalAmount.Add(line.Amount)
	}
	return summary, nil
}

// ForEmployee lists the completed assignments behind one employee's payroll
// line, newest first.
func (s *PayrollService) ForEmployee(ctx context.Context, employeeID uint, from, to time.Time) ([]PayrollDetail, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes start", ErrInvalidQuantity)
	}

	var rows []PayrollDetail
	err := s.db.WithContext(ctx).Raw(`
		SELECT a.id AS assignment_id,
		       g.reference AS garment_reference,
		       o.name AS operation_name,
		       p.order_number,
		       a.quantity,
		       a.amount,
		       a.completed_date
		FROM assignments a
		JOIN garments g ON g.id = a.garment_id
		JOIN operations o ON o.id = a.operation_id
		JOIN production_orders p ON p.id = a.order_id
		WHERE a.employee_id = ?
		  AND a.completed = true
		  AND a.completed_date BETWEEN ? AND ?
		ORDER BY a.completed_date DESC, a.id DESC`,
		employeeID, from.Format("2006-01-02"), to.Format("2006-01-02"),
	).Scan(&rows).Error
	return rows, err
}

type PayrollDetail struct {
	AssignmentID     uint            `json:"assignment_id"`
	GarmentReference string          `json:"garment_reference"`
	OperationName    string          `json:"operation_name"`
	OrderNumber      string          `json:"order_number"`
	Quantity         int             `json:"quantity"`
	Amount           decimal.Decimal `json:"amount"`
	CompletedDate    time.Time       `json:"completed_date"`
}
