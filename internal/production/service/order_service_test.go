package service

import (
	"context"
	"sync"
	"testing"

	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/testutil"
)

func setupOrderTest(t *testing.T) (*OrderService, uint) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	garment := testutil.SeedGarment(t, db, "JKT-100")
	repos := repository.NewRepositories(db)
	return NewOrderService(repos.Order, repos.Garment), garment.ID
}

func TestOrderNumberSequencePerYear(t *testing.T) {
	svc, garmentID := setupOrderTest(t)

	first, err := svc.Create(context.Background(), CreateOrderRequest{
		GarmentID: garmentID, TotalQuantity: 100, EntryDate: "2025-01-10",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.OrderNumber != "ORD-2025-001" {
		t.Errorf("Expected ORD-2025-001, got %s", first.OrderNumber)
	}

	second, err := svc.Create(context.Background(), CreateOrderRequest{
		GarmentID: garmentID, TotalQuantity: 50, EntryDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.OrderNumber != "ORD-2025-002" {
		t.Errorf("Expected ORD-2025-002, got %s", second.OrderNumber)
	}

	// A new year restarts the sequence
	next, err := svc.Create(context.Background(), CreateOrderRequest{
		GarmentID: garmentID, TotalQuantity: 75, EntryDate: "2026-01-02",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if next.OrderNumber != "ORD-2026-001" {
		t.Errorf("Expected ORD-2026-001, got %s", next.OrderNumber)
	}
}

func TestOrderRejectsBadEntryDate(t *testing.T) {
	svc, garmentID := setupOrderTest(t)

	if _, err := svc.Create(context.Background(), CreateOrderRequest{
		GarmentID: garmentID, TotalQuantity: 100, EntryDate: "10/01/2025",
	}); err == nil {
		t.Fatal("Expected error for non-ISO entry date")
	}
}

func TestOrderUpdateKeepsQuantityAndNumber(t *testing.T) {
	svc, garmentID := setupOrderTest(t)

	o, err := svc.Create(context.Background(), CreateOrderRequest{
		GarmentID: garmentID, Color: "navy", Size: "M", TotalQuantity: 100, EntryDate: "2025-01-10",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), o.ID, UpdateOrderRequest{Color: "black", Size: "L"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Color != "black" || updated.Size != "L" {
		t.Errorf("Descriptive fields should change, got %s/%s", updated.Color, updated.Size)
	}
	if updated.TotalQuantity != 100 || updated.OrderNumber != o.OrderNumber {
		t.Error("Quantity and order number must not change on update")
	}
}

func TestOrderNumbersUniqueUnderConcurrentCreates(t *testing.T) {
	svc, garmentID := setupOrderTest(t)

	const workers = 8
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := svc.Create(context.Background(), CreateOrderRequest{
				GarmentID: garmentID, TotalQuantity: 10, EntryDate: "2025-01-10",
			})
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			numbers <- o.OrderNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for n := range numbers {
		if seen[n] {
			t.Fatalf("Order number %s was minted twice", n)
		}
		seen[n] = true
	}
	if len(seen) != workers {
		t.Fatalf("Expected %d distinct order numbers, got %d", workers, len(seen))
	}
}
