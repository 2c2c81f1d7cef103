package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/testutil"
	"gorm.io/gorm"
)

func setupPayrollTest(t *testing.T) (*PayrollService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewPayrollService(db), db
}

// seedCompletedWork inserts a completed assignment directly, with full
// control of the completion date.
func seedCompletedWork(t *testing.T, db *gorm.DB, employeeID, orderID, opID, garmentID uint, quantity int, amount string, completedOn time.Time) {
	t.Helper()
	a := &entity.Assignment{
		EmployeeID:    employeeID,
		GarmentID:     garmentID,
		OperationID:   opID,
		OrderID:       orderID,
		Quantity:      quantity,
		AssignedDate:  completedOn,
		Completed:     true,
		CompletedDate: &completedOn,
		Amount:        decimal.RequireFromString(amount),
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("Failed to seed completed assignment: %v", err)
	}
}

func TestPayrollAggregatesPerEmployee(t *testing.T) {
	svc, db := setupPayrollTest(t)

	maria := testutil.SeedEmployee(t, db, "Maria Lopez")
	ana := testutil.SeedEmployee(t, db, "Ana Ruiz")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.50")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 500)

	day := testutil.Date(2025, 3, 10)
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 40, "100.00", day)
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 20, "50.00", day)
	seedCompletedWork(t, db, ana.ID, order.ID, sew.ID, garment.ID, 10, "25.00", day)

	summary, err := svc.Compute(context.Background(), testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 31))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(summary.Lines) != 2 {
		t.Fatalf("Expected 2 payroll lines, got %d", len(summary.Lines))
	}
	// Ordered by name: Ana before Maria
	if summary.Lines[0].EmployeeID != ana.ID || summary.Lines[0].Pieces != 10 {
		t.Errorf("Unexpected first line: %+v", summary.Lines[0])
	}
	if summary.Lines[0].OperationCount != 1 {
		t.Errorf("Expected Ana with 1 completed operation, got %d", summary.Lines[0].OperationCount)
	}
	if summary.Lines[1].Pieces != 60 || !summary.Lines[1].Amount.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("Expected Maria with 60 pieces / 150.00, got %+v", summary.Lines[1])
	}
	if summary.Lines[1].OperationCount != 2 {
		t.Errorf("Expected Maria with 2 completed operations, got %d", summary.Lines[1].OperationCount)
	}
	if summary.TotalPieces != 70 {
		t.Errorf("Expected grand total 70 pieces, got %d", summary.TotalPieces)
	}
	if summary.TotalOperations != 3 {
		t.Errorf("Expected grand total 3 operations, got %d", summary.TotalOperations)
	}
	if !summary.TotalAmount.Equal(decimal.RequireFromString("175.00")) {
		t.Errorf("Expected grand total 175.00, got %s", summary.TotalAmount)
	}
}

func TestPayrollRangeEndpointsInclusive(t *testing.T) {
	svc, db := setupPayrollTest(t)

	maria := testutil.SeedEmployee(t, db, "Maria Lopez")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.50")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 500)

	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 5, "12.50", testutil.Date(2025, 3, 1))
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 7, "17.50", testutil.Date(2025, 3, 31))
	// Just outside the window on both sides
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 100, "250.00", testutil.Date(2025, 2, 28))
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 100, "250.00", testutil.Date(2025, 4, 1))

	summary, err := svc.Compute(context.Background(), testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 31))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if summary.TotalPieces != 12 {
		t.Errorf("Both range endpoints must count, expected 12 pieces, got %d", summary.TotalPieces)
	}
}

func TestPayrollExcludesZeroAndPending(t *testing.T) {
	svc, db := setupPayrollTest(t)

	maria := testutil.SeedEmployee(t, db, "Maria Lopez")
	idle := testutil.SeedEmployee(t, db, "Idle Worker")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.50")
	free := testutil.SeedOperation(t, db, garment.ID, "rework", "0.00")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 500)

	day := testutil.Date(2025, 3, 10)
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 10, "25.00", day)
	// Zero-rate work earns nothing and produces no payroll line
	seedCompletedWork(t, db, idle.ID, order.ID, free.ID, garment.ID, 10, "0.00", day)

	// Pending work never pays
	pending := &entity.Assignment{
		EmployeeID: maria.ID, GarmentID: garment.ID, OperationID: sew.ID, OrderID: order.ID,
		Quantity: 50, AssignedDate: day, Completed: false,
		Amount: decimal.RequireFromString("125.00"),
	}
	if err := db.Create(pending).Error; err != nil {
		t.Fatalf("Failed to seed pending assignment: %v", err)
	}

	summary, err := svc.Compute(context.Background(), testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 31))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(summary.Lines) != 1 {
		t.Fatalf("Expected 1 payroll line, got %d", len(summary.Lines))
	}
	if summary.Lines[0].EmployeeID != maria.ID || summary.Lines[0].Pieces != 10 {
		t.Errorf("Unexpected line: %+v", summary.Lines[0])
	}
}

func TestPayrollIsIdempotent(t *testing.T) {
	svc, db := setupPayrollTest(t)

	maria := testutil.SeedEmployee(t, db, "Maria Lopez")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.50")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 500)
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 10, "25.00", testutil.Date(2025, 3, 10))

	from, to := testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 31)
	first, err := svc.Compute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	second, err := svc.Compute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if first.TotalPieces != second.TotalPieces || !first.TotalAmount.Equal(second.TotalAmount) {
		t.Error("Recomputing the same window must give identical results")
	}
}

func TestPayrollRejectsInvertedRange(t *testing.T) {
	svc, _ := setupPayrollTest(t)
	_, err := svc.Compute(context.Background(), testutil.Date(2025, 3, 31), testutil.Date(2025, 3, 1))
	if err == nil {
		t.Fatal("Expected error for inverted date range")
	}
}

func TestPayrollEmployeeDetail(t *testing.T) {
	svc, db := setupPayrollTest(t)

	maria := testutil.SeedEmployee(t, db, "Maria Lopez")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.50")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 500)
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 10, "25.00", testutil.Date(2025, 3, 10))
	seedCompletedWork(t, db, maria.ID, order.ID, sew.ID, garment.ID, 5, "12.50", testutil.Date(2025, 3, 12))

	details, err := svc.ForEmployee(context.Background(), maria.ID, testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 31))
	if err != nil {
		t.Fatalf("ForEmployee failed: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("Expected 2 detail rows, got %d", len(details))
	}
	// Newest first
	if details[0].Quantity != 5 || details[0].OrderNumber != "ORD-2025-001" {
		t.Errorf("Unexpected first detail row: %+v", details[0])
	}
	if details[0].GarmentReference != "JKT-100" || details[0].OperationName != "sew" {
		t.Errorf("Detail row must carry the garment reference and operation name, got %+v", details[0])
	}
}
