package sim

import (
	"math"
	"testing"
)

func TestPointerTrackerFirstSamplePrimes(t *testing.T) {
	tr := NewPointerTracker(0.0001)

	// First sample has no history: prev snaps to cur, zero velocity.
	st := tr.Sample(0.7, 0.3)
	if st.Prev != st.Cur {
		t.Errorf("first sample prev %v != cur %v", st.Prev, st.Cur)
	}
	if st.Velocity != 0 {
		t.Errorf("first sample velocity = %v, want 0", st.Velocity)
	}
}

func TestPointerTrackerVelocity(t *testing.T) {
	tr := NewPointerTracker(0.0001)

	tr.Sample(0, 0)
	st := tr.Sample(0.3, 0.4)

	if math.Abs(float64(st.Velocity)-0.5) > 1e-5 {
		t.Errorf("velocity = %v, want 0.5", st.Velocity)
	}
	if st.Prev.X != 0 || st.Prev.Y != 0 {
		t.Errorf("prev = %v, want origin", st.Prev)
	}
	if st.Cur.X != 0.3 || st.Cur.Y != 0.4 {
		t.Errorf("cur = %v, want (0.3, 0.4)", st.Cur)
	}
}

func TestPointerTrackerClampsInput(t *testing.T) {
	tr := NewPointerTracker(0.0001)

	st := tr.Sample(-0.5, 1.8)
	if st.Cur.X != 0 || st.Cur.Y != 1 {
		t.Errorf("out-of-range input not clamped: %v", st.Cur)
	}
}

func TestPointerTrackerIdleCounting(t *testing.T) {
	tr := NewPointerTracker(0.0001)

	// The priming sample has zero velocity, so it already counts as idle.
	tr.Sample(0.5, 0.5)
	if tr.IdleTicks() != 1 {
		t.Fatalf("idle after priming sample = %d, want 1", tr.IdleTicks())
	}

	// A stationary pointer keeps accumulating idle ticks
	for i := 2; i <= 6; i++ {
		tr.Sample(0.5, 0.5)
		if tr.IdleTicks() != i {
			t.Fatalf("after %d still ticks, idle = %d", i, tr.IdleTicks())
		}
	}

	// Motion above the threshold resets the counter
	tr.Sample(0.6, 0.5)
	if tr.IdleTicks() != 0 {
		t.Errorf("idle ticks = %d after motion, want 0", tr.IdleTicks())
	}

	// Sub-threshold jitter still counts as idle
	tr.Sample(0.6, 0.5)
	tr.Sample(0.6+0.00001, 0.5)
	if tr.IdleTicks() != 2 {
		t.Errorf("idle ticks = %d after jitter, want 2", tr.IdleTicks())
	}
}

func TestPointerTrackerReset(t *testing.T) {
	tr := NewPointerTracker(0.0001)

	tr.Sample(0.2, 0.2)
	tr.Sample(0.2, 0.2)
	tr.Reset()

	if tr.IdleTicks() != 0 {
		t.Errorf("idle ticks = %d after reset, want 0", tr.IdleTicks())
	}

	// After reset the next sample primes again: no ghost stroke.
	st := tr.Sample(0.9, 0.9)
	if st.Velocity != 0 {
		t.Errorf("velocity after reset = %v, want 0", st.Velocity)
	}
}
