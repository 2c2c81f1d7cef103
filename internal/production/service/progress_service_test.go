package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/testutil"
	"gorm.io/gorm"
)

func setupProgressTest(t *testing.T) (*ProgressService, *AssignmentService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	progress := NewProgressService(db, repos.Order, repos.Operation, repos.Assignment)
	assignments := NewAssignmentService(repos.Assignment, repos.Order, repos.Operation, repos.Employee, db)
	return progress, assignments, db
}

// completeN assigns and completes quantity pieces of one operation.
func completeN(t *testing.T, svc *AssignmentService, employeeID, orderID, opID uint, quantity int) {
	t.Helper()
	a, err := svc.Create(context.Background(), CreateAssignmentRequest{
		EmployeeID: employeeID, OrderID: orderID, OperationID: opID, Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Complete(context.Background(), a.ID, quantity); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestProgressIsBottleneckedBySlowestOperation(t *testing.T) {
	progress, assignments, db := setupProgressTest(t)

	employee := testutil.SeedEmployee(t, db, "Ana Ruiz")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	cut := testutil.SeedOperation(t, db, garment.ID, "cut", "1.00")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.00")
	pack := testutil.SeedOperation(t, db, garment.ID, "pack", "0.50")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 100)

	completeN(t, assignments, employee.ID, order.ID, cut.ID, 80)
	completeN(t, assignments, employee.ID, order.ID, sew.ID, 50)
	// pack has no deliveries at all

	p, err := progress.ForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ForOrder failed: %v", err)
	}
	if p.Completed != 0 {
		t.Errorf("An operation with no deliveries pins completion at 0, got %d", p.Completed)
	}
	if len(p.PerOperation) != 3 {
		t.Fatalf("Expected 3 per-operation entries, got %d", len(p.PerOperation))
	}

	completeN(t, assignments, employee.ID, order.ID, pack.ID, 30)

	p, err = progress.ForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ForOrder failed: %v", err)
	}
	if p.Completed != 30 {
		t.Errorf("Expected completed 30 (slowest operation), got %d", p.Completed)
	}
	if p.Percentage != 30 {
		t.Errorf("Expected 30%%, got %d", p.Percentage)
	}
	if p.Total != 100 {
		t.Errorf("Expected total 100, got %d", p.Total)
	}
}

func TestProgressPercentageRounds(t *testing.T) {
	progress, assignments, db := setupProgressTest(t)

	employee := testutil.SeedEmployee(t, db, "Ana Ruiz")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.00")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-002", 3)

	completeN(t, assignments, employee.ID, order.ID, sew.ID, 1)

	p, err := progress.ForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ForOrder failed: %v", err)
	}
	// 1/3 rounds to 33, not truncates to 0 decimal weirdness
	if p.Percentage != 33 {
		t.Errorf("Expected 33%%, got %d", p.Percentage)
	}

	completeN(t, assignments, employee.ID, order.ID, sew.ID, 1)
	p, _ = progress.ForOrder(context.Background(), order.ID)
	// 2/3 rounds up to 67
	if p.Percentage != 67 {
		t.Errorf("Expected 67%%, got %d", p.Percentage)
	}
}

func TestProgressWithoutOperationsIsZero(t *testing.T) {
	progress, _, db := setupProgressTest(t)

	garment := testutil.SeedGarment(t, db, "BAG-300")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-003", 50)

	p, err := progress.ForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ForOrder failed: %v", err)
	}
	if p.Completed != 0 || p.Percentage != 0 {
		t.Errorf("Order of a garment with no operations cannot advance, got %d/%d%%", p.Completed, p.Percentage)
	}
	if len(p.PerOperation) != 0 {
		t.Errorf("Expected empty per-operation breakdown, got %d entries", len(p.PerOperation))
	}
}

func TestProgressIgnoresPendingAssignments(t *testing.T) {
	progress, assignments, db := setupProgressTest(t)

	employee := testutil.SeedEmployee(t, db, "Ana Ruiz")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.00")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-004", 100)

	// Assigned but not delivered
	if _, err := assignments.Create(context.Background(), CreateAssignmentRequest{
		EmployeeID: employee.ID, OrderID: order.ID, OperationID: sew.ID, Quantity: 70,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	p, err := progress.ForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ForOrder failed: %v", err)
	}
	if p.Completed != 0 {
		t.Errorf("Pending assignments must not count as progress, got %d", p.Completed)
	}
}

func TestProgressReadsThroughCallerHandle(t *testing.T) {
	progress, _, db := setupProgressTest(t)

	employee := testutil.SeedEmployee(t, db, "Ana Ruiz")
	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.00")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-005", 100)

	tx := db.Begin()
	defer tx.Rollback()

	done := testutil.Date(2025, 3, 10)
	work := &entity.Assignment{
		EmployeeID: employee.ID, GarmentID: garment.ID, OperationID: sew.ID, OrderID: order.ID,
		Quantity: 30, AssignedDate: done, Completed: true, CompletedDate: &done,
		Amount: decimal.RequireFromString("60.00"),
	}
	if err := tx.Create(work).Error; err != nil {
		t.Fatalf("Failed to create assignment in transaction: %v", err)
	}

	// A caller holding the transaction sees its own uncommitted delivery.
	inside, err := progress.compute(tx, order)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if inside.Completed != 30 {
		t.Errorf("Expected 30 completed on the transaction handle, got %d", inside.Completed)
	}

	// Outside the transaction nothing has landed yet.
	outside, err := progress.ForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ForOrder failed: %v", err)
	}
	if outside.Completed != 0 {
		t.Errorf("Uncommitted work must stay invisible outside the transaction, got %d", outside.Completed)
	}
}
