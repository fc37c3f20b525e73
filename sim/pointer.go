package sim

import "math"

// Vec2 is a normalized viewport coordinate, origin top-left.
type Vec2 struct {
	X, Y float32
}

// PointerState is one tick's pointer sample: the current and previous
// positions, the per-tick velocity (distance between them), and the running
// count of consecutive near-idle ticks.
type PointerState struct {
	Cur       Vec2
	Prev      Vec2
	Velocity  float32
	IdleTicks int
}

// PointerTracker samples the pointer once per tick and keeps the idle
// bookkeeping. On the first sample the previous position is primed to the
// current one so no spurious stroke is injected.
type PointerTracker struct {
	prev       Vec2
	primed     bool
	idleTicks  int
	idleThresh float32
}

// NewPointerTracker creates a tracker with the given idle velocity threshold.
func NewPointerTracker(idleThresh float32) *PointerTracker {
	return &PointerTracker{idleThresh: idleThresh}
}

// Sample records the pointer position for this tick and returns the derived
// state. Coordinates are clamped to [0,1].
func (t *PointerTracker) Sample(x, y float32) PointerState {
	cur := Vec2{X: clamp01(x), Y: clamp01(y)}
	if !t.primed {
		t.prev = cur
		t.primed = true
	}

	dx := cur.X - t.prev.X
	dy := cur.Y - t.prev.Y
	vel := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	if vel < t.idleThresh {
		t.idleTicks++
	} else {
		t.idleTicks = 0
	}

	st := PointerState{
		Cur:       cur,
		Prev:      t.prev,
		Velocity:  vel,
		IdleTicks: t.idleTicks,
	}
	t.prev = cur
	return st
}

// IdleTicks returns the current consecutive-idle count.
func (t *PointerTracker) IdleTicks() int {
	return t.idleTicks
}

// IdleThreshold returns the velocity below which a tick counts as idle.
func (t *PointerTracker) IdleThreshold() float32 {
	return t.idleThresh
}

// Reset clears the priming and idle state, as if no sample was ever taken.
func (t *PointerTracker) Reset() {
	t.primed = false
	t.idleTicks = 0
	t.prev = Vec2{}
}
