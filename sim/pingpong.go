package sim

// FieldPair owns the two density-field buffers and alternates their
// read/write roles by tick parity. The simulation writes Write(), then the
// caller Swap()s so the freshly written field becomes Read() for the display
// pass and the next tick's advection source. Access is single-threaded by
// contract; the role alternation is the only synchronization needed.
type FieldPair struct {
	bufs   [2]*DensityField
	parity int
}

// NewFieldPair allocates both buffers at the given size.
func NewFieldPair(w, h int) *FieldPair {
	return &FieldPair{
		bufs: [2]*DensityField{
			NewDensityField(w, h),
			NewDensityField(w, h),
		},
	}
}

// Read returns the most recently written field.
func (p *FieldPair) Read() *DensityField {
	return p.bufs[p.parity]
}

// Write returns the field the next simulation step should fill.
func (p *FieldPair) Write() *DensityField {
	return p.bufs[1-p.parity]
}

// Swap flips the read/write roles. Call after the simulation step completes.
func (p *FieldPair) Swap() {
	p.parity = 1 - p.parity
}

// Size returns the buffer dimensions.
func (p *FieldPair) Size() (int, int) {
	return p.bufs[0].W, p.bufs[0].H
}

// Resize reallocates both buffers at the new size and resets content.
// Must only be called between ticks.
func (p *FieldPair) Resize(w, h int) {
	p.bufs[0] = NewDensityField(w, h)
	p.bufs[1] = NewDensityField(w, h)
	p.parity = 0
}
