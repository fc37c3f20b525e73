package sim

import (
	"math"
	"testing"

	"github.com/drift-fx/prism/config"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

// stroke builds a pointer state for a segment from (ax, ay) to (bx, by).
func stroke(ax, ay, bx, by float32) PointerState {
	dx := bx - ax
	dy := by - ay
	return PointerState{
		Prev:     Vec2{X: ax, Y: ay},
		Cur:      Vec2{X: bx, Y: by},
		Velocity: float32(math.Sqrt(float64(dx*dx + dy*dy))),
	}
}

func TestStepInjectsAlongStroke(t *testing.T) {
	s := NewSimulator(config.Cfg())
	pair := NewFieldPair(64, 64)

	ptr := stroke(0, 0, 1, 1)
	s.Step(pair.Write(), pair.Read(), ptr, 0)
	pair.Swap()

	f := pair.Read()

	// On the diagonal: strong injection
	if got := f.At(32, 32); got < 0.5 {
		t.Errorf("density on stroke = %v, want >= 0.5", got)
	}

	// Far corner (0, 1) in UV, well outside the brush radius: untouched
	if got := f.At(2, 61); got != 0 {
		t.Errorf("density far from stroke = %v, want 0", got)
	}
}

func TestStepNoInjectionWhenStill(t *testing.T) {
	s := NewSimulator(config.Cfg())
	pair := NewFieldPair(32, 32)

	still := PointerState{
		Prev: Vec2{X: 0.5, Y: 0.5},
		Cur:  Vec2{X: 0.5, Y: 0.5},
	}
	s.Step(pair.Write(), pair.Read(), still, 0)
	pair.Swap()

	for i, v := range pair.Read().Data {
		if v != 0 {
			t.Fatalf("still pointer injected density: texel %d = %v", i, v)
		}
	}
}

func TestStepDensityStaysNormalized(t *testing.T) {
	s := NewSimulator(config.Cfg())
	pair := NewFieldPair(32, 32)

	// Repeated injection at the same spot must not overflow [0, 1].
	ptr := stroke(0.45, 0.5, 0.55, 0.5)
	for i := 0; i < 50; i++ {
		s.Step(pair.Write(), pair.Read(), ptr, float32(i)*0.016)
		pair.Swap()
	}

	for i, v := range pair.Read().Data {
		if v < 0 || v > 1 {
			t.Fatalf("density out of range at texel %d: %v", i, v)
		}
	}
	if pair.Read().Summary(0).Max < 0.9 {
		t.Error("sustained injection should nearly saturate the stroke")
	}
}

func TestDecayFactorMonotonic(t *testing.T) {
	s := NewSimulator(config.Cfg())
	sc := config.Cfg().Simulation

	if got := s.DecayFactor(0); got != float32(sc.DecayMin) {
		t.Errorf("decay at zero velocity = %v, want %v", got, sc.DecayMin)
	}
	if got := s.DecayFactor(float32(sc.VelocityRamp) * 2); got != float32(sc.DecayMax) {
		t.Errorf("decay above ramp = %v, want %v", got, sc.DecayMax)
	}

	prev := s.DecayFactor(0)
	for i := 1; i <= 10; i++ {
		v := float32(sc.VelocityRamp) * float32(i) / 10
		cur := s.DecayFactor(v)
		if cur < prev {
			t.Fatalf("decay not monotonic: f(%v) = %v < %v", v, cur, prev)
		}
		prev = cur
	}
}

func BenchmarkStep(b *testing.B) {
	s := NewSimulator(config.Cfg())
	pair := NewFieldPair(640, 360)
	ptr := stroke(0.3, 0.4, 0.7, 0.6)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(pair.Write(), pair.Read(), ptr, float32(i)*0.016)
		pair.Swap()
	}
}

func TestStepTrailFadesWhenPointerSlows(t *testing.T) {
	s := NewSimulator(config.Cfg())
	pair := NewFieldPair(32, 32)

	// Lay down a trail
	ptr := stroke(0.2, 0.5, 0.8, 0.5)
	for i := 0; i < 10; i++ {
		s.Step(pair.Write(), pair.Read(), ptr, float32(i)*0.016)
		pair.Swap()
	}
	before := pair.Read().Summary(0).Mean

	// Then hold still; decay at min retention drains the field
	still := PointerState{Prev: Vec2{X: 0.8, Y: 0.5}, Cur: Vec2{X: 0.8, Y: 0.5}}
	for i := 0; i < 60; i++ {
		s.Step(pair.Write(), pair.Read(), still, float32(10+i)*0.016)
		pair.Swap()
	}
	after := pair.Read().Summary(0).Mean

	if after >= before*0.1 {
		t.Errorf("trail did not fade: mean %v -> %v", before, after)
	}
}
