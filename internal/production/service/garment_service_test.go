package service

import (
	"context"
	"errors"
	"testing"

	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/testutil"
)

func TestGarmentReferenceNormalizedAndUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewGarmentService(repository.NewGarmentRepository(db))

	g, err := svc.Create(context.Background(), GarmentRequest{Reference: "  jkt-100 ", Description: "bomber jacket"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.Reference != "JKT-100" {
		t.Errorf("Expected normalized reference JKT-100, got %q", g.Reference)
	}

	// Same reference in any casing is a duplicate
	if _, err := svc.Create(context.Background(), GarmentRequest{Reference: "Jkt-100"}); !errors.Is(err, ErrDuplicateReference) {
		t.Errorf("Expected ErrDuplicateReference, got %v", err)
	}
}

func TestGarmentDeletedReferenceStaysReserved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewGarmentService(repository.NewGarmentRepository(db))

	g, err := svc.Create(context.Background(), GarmentRequest{Reference: "JKT-100"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), g.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The row is soft-deleted, so the reference cannot be recycled
	if _, err := svc.Create(context.Background(), GarmentRequest{Reference: "JKT-100"}); !errors.Is(err, ErrDuplicateReference) {
		t.Errorf("Expected ErrDuplicateReference for retired reference, got %v", err)
	}

	// And the garment no longer appears in reads
	if _, err := svc.Get(context.Background(), g.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for deleted garment, got %v", err)
	}
}
