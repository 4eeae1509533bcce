package usecase

import (
	"testing"
	"time"
)

func TestCallPacerEnforcesRecordedGap(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var slept []time.Duration

	p := newCallPacer()
	p.now = func() time.Time { return now }
	p.sleep = func(d time.Duration) {
		slept = append(slept, d)
		now = now.Add(d)
	}

	// Nothing recorded yet: first call passes straight through.
	p.Wait()
	if len(slept) != 0 {
		t.Fatalf("expected no sleep before first call, got %v", slept)
	}

	p.Record(successPacing)
	p.Wait()
	if len(slept) != 1 || slept[0] != successPacing {
		t.Fatalf("expected a %v wait, got %v", successPacing, slept)
	}

	// The window already elapsed: no additional wait.
	p.Wait()
	if len(slept) != 1 {
		t.Fatalf("expected no further sleep, got %v", slept)
	}

	p.Record(errorPacing)
	p.Wait()
	if len(slept) != 2 || slept[1] != errorPacing {
		t.Fatalf("expected a %v wait, got %v", errorPacing, slept)
	}
}
