// server/internal/api/handlers/hr_handler_test.go
package handlers

import (
	"testing"

	"asset-verse-api-server/internal/models"
)

func TestUpgradeSummary(t *testing.T) {
	t.Run("reports seat usage next to the new limit", func(t *testing.T) {
		out := upgradeSummary(models.User{
			Subscription:     "standard",
			PackageLimit:     10,
			CurrentEmployees: 4,
		})
		if out["package"] != "standard" || out["packageLimit"] != 10 || out["currentEmployees"] != 4 {
			t.Fatalf("unexpected summary: %v", out)
		}
		if _, ok := out["seatsOverLimit"]; ok {
			t.Fatalf("no overshoot expected: %v", out)
		}
	})

	t.Run("flags a downgrade below the occupied seats", func(t *testing.T) {
		out := upgradeSummary(models.User{
			Subscription:     "basic",
			PackageLimit:     5,
			CurrentEmployees: 8,
		})
		if out["seatsOverLimit"] != 3 {
			t.Fatalf("expected 3 seats over the limit, got %v", out["seatsOverLimit"])
		}
	})
}
