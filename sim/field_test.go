package sim

import (
	"math"
	"testing"
)

func TestDensityFieldCreation(t *testing.T) {
	f := NewDensityField(64, 32)

	if f.W != 64 || f.H != 32 {
		t.Errorf("expected 64x32, got %dx%d", f.W, f.H)
	}
	if len(f.Data) != 64*32 {
		t.Errorf("expected %d texels, got %d", 64*32, len(f.Data))
	}

	// Degenerate dimensions are clamped to 1
	g := NewDensityField(0, -5)
	if g.W != 1 || g.H != 1 {
		t.Errorf("expected degenerate field clamped to 1x1, got %dx%d", g.W, g.H)
	}
}

func TestDensityFieldAtEdgeClamp(t *testing.T) {
	f := NewDensityField(4, 4)
	f.Set(0, 0, 0.5)
	f.Set(3, 3, 0.9)

	tests := []struct {
		name string
		x, y int
		want float32
	}{
		{"in bounds", 0, 0, 0.5},
		{"negative x", -3, 0, 0.5},
		{"negative y", 0, -1, 0.5},
		{"x overflow", 10, 3, 0.9},
		{"y overflow", 3, 10, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDensityFieldBilinearSample(t *testing.T) {
	f := NewDensityField(2, 2)
	f.Set(0, 0, 0)
	f.Set(1, 0, 1)
	f.Set(0, 1, 0)
	f.Set(1, 1, 1)

	// Dead center is the average of all four texels
	got := f.Sample(0.5, 0.5)
	if math.Abs(float64(got)-0.5) > 1e-5 {
		t.Errorf("Sample(0.5, 0.5) = %v, want 0.5", got)
	}

	// Texel centers reproduce stored values
	if got := f.Sample(0.25, 0.25); math.Abs(float64(got)) > 1e-5 {
		t.Errorf("Sample at texel (0,0) center = %v, want 0", got)
	}
	if got := f.Sample(0.75, 0.25); math.Abs(float64(got)-1) > 1e-5 {
		t.Errorf("Sample at texel (1,0) center = %v, want 1", got)
	}

	// Outside the unit square clamps to edge texels
	if got := f.Sample(-1, 0.25); math.Abs(float64(got)) > 1e-5 {
		t.Errorf("Sample left of field = %v, want 0", got)
	}
	if got := f.Sample(2, 0.25); math.Abs(float64(got)-1) > 1e-5 {
		t.Errorf("Sample right of field = %v, want 1", got)
	}
}

func TestDensityFieldSummary(t *testing.T) {
	f := NewDensityField(2, 2)
	f.Set(0, 0, 0.4)
	f.Set(1, 0, 0.8)
	// other two stay 0

	s := f.Summary(0.005)

	if math.Abs(float64(s.Mean)-0.3) > 1e-5 {
		t.Errorf("mean = %v, want 0.3", s.Mean)
	}
	if s.Max != 0.8 {
		t.Errorf("max = %v, want 0.8", s.Max)
	}
	if math.Abs(float64(s.Coverage)-0.5) > 1e-5 {
		t.Errorf("coverage = %v, want 0.5", s.Coverage)
	}
}

func TestFieldPairSwap(t *testing.T) {
	p := NewFieldPair(4, 4)

	read := p.Read()
	write := p.Write()
	if read == write {
		t.Fatal("read and write buffers must be distinct")
	}

	write.Set(1, 1, 0.7)
	p.Swap()

	if p.Read().At(1, 1) != 0.7 {
		t.Error("swap did not expose the written buffer for reading")
	}
	if p.Write() != read {
		t.Error("swap did not recycle the old read buffer for writing")
	}
}

func TestFieldPairResize(t *testing.T) {
	p := NewFieldPair(8, 8)
	p.Write().Set(2, 2, 0.5)
	p.Swap()

	p.Resize(16, 4)

	w, h := p.Size()
	if w != 16 || h != 4 {
		t.Errorf("expected 16x4 after resize, got %dx%d", w, h)
	}

	// Resize starts from an empty trail
	for i, v := range p.Read().Data {
		if v != 0 {
			t.Fatalf("expected zeroed field after resize, texel %d = %v", i, v)
		}
	}
}
