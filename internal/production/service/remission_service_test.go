package service

import (
	"context"
	"errors"
	"testing"

	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/testutil"
	"gorm.io/gorm"
)

func setupRemissionTest(t *testing.T) (*RemissionService, *AssignmentService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	progress := NewProgressService(db, repos.Order, repos.Operation, repos.Assignment)
	remissions := NewRemissionService(repos.Remission, repos.Order, progress, db)
	assignments := NewAssignmentService(repos.Assignment, repos.Order, repos.Operation, repos.Employee, db)
	return remissions, assignments, db
}

// finishPieces drives quantity pieces of an order through its single
// operation so they count as completed stock.
func finishPieces(t *testing.T, assignments *AssignmentService, db *gorm.DB, orderID, opID uint, quantity int) {
	t.Helper()
	employee := testutil.SeedEmployee(t, db, "Worker")
	a, err := assignments.Create(context.Background(), CreateAssignmentRequest{
		EmployeeID: employee.ID, OrderID: orderID, OperationID: opID, Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := assignments.Complete(context.Background(), a.ID, quantity); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestRemissionDispatchCeiling(t *testing.T) {
	remissions, assignments, db := setupRemissionTest(t)

	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.00")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 100)
	finishPieces(t, assignments, db, order.ID, sew.ID, 40)

	// Over the ceiling
	_, err := remissions.Create(context.Background(), CreateRemissionRequest{
		OrderID: order.ID, DispatchedQuantity: 41, DispatchDate: "2025-03-15",
	})
	if !errors.Is(err, ErrInsufficientCompletedStock) {
		t.Fatalf("Expected ErrInsufficientCompletedStock, got %v", err)
	}

	// Exactly at the ceiling
	rem, err := remissions.Create(context.Background(), CreateRemissionRequest{
		OrderID: order.ID, DispatchedQuantity: 40, DispatchDate: "2025-03-15", Observations: "first truck",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rem.DispatchedQuantity != 40 {
		t.Errorf("Expected dispatched 40, got %d", rem.DispatchedQuantity)
	}

	// Nothing dispatchable left
	left, err := remissions.Dispatchable(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Dispatchable failed: %v", err)
	}
	if left != 0 {
		t.Errorf("Expected 0 dispatchable, got %d", left)
	}
	if _, err := remissions.Create(context.Background(), CreateRemissionRequest{
		OrderID: order.ID, DispatchedQuantity: 1, DispatchDate: "2025-03-16",
	}); !errors.Is(err, ErrInsufficientCompletedStock) {
		t.Errorf("Expected ErrInsufficientCompletedStock, got %v", err)
	}
}

func TestRemissionDispatchableGrowsWithCompletion(t *testing.T) {
	remissions, assignments, db := setupRemissionTest(t)

	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.00")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 100)

	left, err := remissions.Dispatchable(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Dispatchable failed: %v", err)
	}
	if left != 0 {
		t.Errorf("Nothing finished yet, expected 0, got %d", left)
	}

	finishPieces(t, assignments, db, order.ID, sew.ID, 30)
	if _, err := remissions.Create(context.Background(), CreateRemissionRequest{
		OrderID: order.ID, DispatchedQuantity: 10, DispatchDate: "2025-03-15",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	finishPieces(t, assignments, db, order.ID, sew.ID, 20)

	left, _ = remissions.Dispatchable(context.Background(), order.ID)
	if left != 40 {
		t.Errorf("Expected 50 finished - 10 dispatched = 40, got %d", left)
	}
}

func TestRemissionDeleteReturnsQuantity(t *testing.T) {
	remissions, assignments, db := setupRemissionTest(t)

	garment := testutil.SeedGarment(t, db, "JKT-100")
	sew := testutil.SeedOperation(t, db, garment.ID, "sew", "2.00")
	order := testutil.SeedOrder(t, db, garment.ID, "ORD-2025-001", 100)
	finishPieces(t, assignments, db, order.ID, sew.ID, 50)

	rem, err := remissions.Create(context.Background(), CreateRemissionRequest{
		OrderID: order.ID, DispatchedQuantity: 50, DispatchDate: "2025-03-15",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := remissions.Delete(context.Background(), rem.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Soft delete: row stays, quantity is dispatchable again
	var row entity.Remission
	if err := db.First(&row, rem.ID).Error; err != nil {
		t.Fatalf("Remission row should still exist: %v", err)
	}
	if row.Active {
		t.Error("Deleted remission should be inactive")
	}

	left, _ := remissions.Dispatchable(context.Background(), order.ID)
	if left != 50 {
		t.Errorf("Voided remission returns its quantity, expected 50, got %d", left)
	}
}
