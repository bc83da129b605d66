// server/internal/clock/clock_test.go
package clock

import (
	"testing"
	"time"
)

func TestFixedClock(t *testing.T) {
	instant := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clk := NewFixed(instant)

	if got := clk.Now(); !got.Equal(instant) {
		t.Fatalf("expected %v, got %v", instant, got)
	}
	if got := clk.Now(); !got.Equal(instant) {
		t.Fatalf("fixed clock must not advance, got %v", got)
	}
}

func TestSystemClockIsUTC(t *testing.T) {
	clk := NewSystem()
	if loc := clk.Now().Location(); loc != time.UTC {
		t.Fatalf("expected UTC, got %v", loc)
	}
}
