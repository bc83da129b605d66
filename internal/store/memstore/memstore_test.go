// server/internal/store/memstore/memstore_test.go
package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"
)

func TestReserveUnit_RaceForLastUnit(t *testing.T) {
	t.Parallel()

	st := New()
	st.AddAsset(models.AssetItem{AssetID: "AST-1", Total: 5, Available: 1})

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = st.ReserveUnit(context.Background(), "AST-1")
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, core.ErrOutOfStock):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 successful reservation, got %d", successes)
	}

	asset, _ := st.Asset("AST-1")
	if asset.Available != 0 {
		t.Fatalf("expected available 0, got %d", asset.Available)
	}
}

func TestReleaseUnit_CappedAtTotal(t *testing.T) {
	t.Parallel()

	st := New()
	st.AddAsset(models.AssetItem{AssetID: "AST-1", Total: 2, Available: 2})

	asset, err := st.ReleaseUnit(context.Background(), "AST-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if asset.Available != 2 {
		t.Fatalf("release past total must be a no-op, got %d", asset.Available)
	}
}

func TestSetQuantity_GuardsAssignedUnits(t *testing.T) {
	t.Parallel()

	st := New()
	st.AddAsset(models.AssetItem{AssetID: "AST-1", Total: 4, Available: 1}) // 3 assigned

	if _, err := st.SetQuantity(context.Background(), "AST-1", 2, time.Now()); !errors.Is(err, core.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	asset, err := st.SetQuantity(context.Background(), "AST-1", 3, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if asset.Total != 3 || asset.Available != 0 {
		t.Fatalf("expected total 3 / available 0, got %d / %d", asset.Total, asset.Available)
	}
}

func TestGetOrCreate_AtMostOnePerPair(t *testing.T) {
	t.Parallel()

	st := New()
	st.AddEmployer(models.User{Email: "hr@x.test", Role: models.RoleHR, PackageLimit: 5})

	const workers = 4
	var wg sync.WaitGroup
	created := make([]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, created[i], _ = st.GetOrCreate(context.Background(), "eve@x.test", "hr@x.test", "Eve", time.Now())
		}(i)
	}
	wg.Wait()

	var creations int
	for _, c := range created {
		if c {
			creations++
		}
	}
	if creations != 1 {
		t.Fatalf("expected exactly one creation, got %d", creations)
	}
	if employer, _ := st.Employer("hr@x.test"); employer.CurrentEmployees != 1 {
		t.Fatalf("expected currentEmployees 1, got %d", employer.CurrentEmployees)
	}
}

func TestOpen_IdempotentOnRequestID(t *testing.T) {
	t.Parallel()

	st := New()

	first, created, err := st.Open(context.Background(), models.Assignment{
		AssignmentID: "ASG-1", RequestID: "REQ-1", Status: models.AssignmentStatusAssigned,
	})
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}

	second, created, err := st.Open(context.Background(), models.Assignment{
		AssignmentID: "ASG-2", RequestID: "REQ-1", Status: models.AssignmentStatusAssigned,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created {
		t.Fatalf("expected retry to reuse the existing assignment")
	}
	if second.AssignmentID != first.AssignmentID {
		t.Fatalf("expected assignment %s, got %s", first.AssignmentID, second.AssignmentID)
	}
	if st.AssignmentCount() != 1 {
		t.Fatalf("expected one assignment, got %d", st.AssignmentCount())
	}
}
