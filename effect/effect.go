// Package effect drives the fluid trail: one Tick samples the pointer,
// advances the density field, shades it into pixels and updates the spark
// layer. The caller owns the frame loop and the texture the pixels land in.
package effect

import (
	"image/color"

	"github.com/drift-fx/prism/config"
	"github.com/drift-fx/prism/sim"
	"github.com/drift-fx/prism/telemetry"
)

// State is the driver's lifecycle state.
type State uint8

const (
	// StateUninitialized means no tick has run yet.
	StateUninitialized State = iota
	// StateActive means the simulation is advancing every tick.
	StateActive
	// StateIdleSuspended means the pointer has been still long enough that
	// ticks are skipped and the last shaded frame stays on screen.
	StateIdleSuspended
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateIdleSuspended:
		return "idle_suspended"
	default:
		return "unknown"
	}
}

// Effect owns the full pipeline for one viewport.
type Effect struct {
	cfg *config.Config

	fields    *sim.FieldPair
	tracker   *sim.PointerTracker
	simulator *sim.Simulator
	shader    *sim.Shader
	sparks    *SparkSystem
	pool      *rowPool

	pix []color.RGBA

	elapsed float32 // flow time, frozen while suspended
	clock   float32 // wall time in ticks * dt, always advances
	tick    int64
	state   State
	hovered bool

	idleLimit int

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	lastFlush float32

	uploader func(pix []color.RGBA)
	onWindow func(telemetry.WindowStats)
	onPerf   func(telemetry.PerfStats)
}

// New creates an effect sized to the given viewport in pixels. Field
// resolution is the viewport divided by the configured downscale.
func New(viewportW, viewportH int) *Effect {
	cfg := config.Cfg()

	fw, fh := fieldSize(viewportW, viewportH, cfg.Field.Downscale)
	simulator := sim.NewSimulator(cfg)

	return &Effect{
		cfg:       cfg,
		fields:    sim.NewFieldPair(fw, fh),
		tracker:   sim.NewPointerTracker(float32(cfg.Simulation.IdleThresh)),
		simulator: simulator,
		shader:    sim.NewShader(cfg),
		sparks:    NewSparkSystem(cfg, simulator.Noise()),
		pool:      newRowPool(),
		pix:       make([]color.RGBA, fw*fh),
		state:     StateUninitialized,
		idleLimit: cfg.Simulation.IdleLimit,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(),
	}
}

func fieldSize(w, h, downscale int) (int, int) {
	fw := w / downscale
	fh := h / downscale
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

// SetUploader registers the callback that receives shaded pixels on every
// changed frame. Timed as the upload phase. Optional; headless runs leave
// it unset.
func (e *Effect) SetUploader(fn func(pix []color.RGBA)) {
	e.uploader = fn
}

// OnWindow registers a callback for flushed telemetry windows.
func (e *Effect) OnWindow(fn func(telemetry.WindowStats)) {
	e.onWindow = fn
}

// OnPerf registers a callback for periodic performance stats.
func (e *Effect) OnPerf(fn func(telemetry.PerfStats)) {
	e.onPerf = fn
}

// Tick advances the effect by dt seconds with the pointer at the
// normalized viewport position (px, py). It returns true when the pixel
// buffer changed; a false return means the previous frame is still valid
// bit for bit.
func (e *Effect) Tick(dt, px, py float32) bool {
	e.perf.StartTick()
	e.tick++
	e.clock += dt

	e.perf.StartPhase(telemetry.PhasePointer)
	ptr := e.tracker.Sample(px, py)

	switch e.state {
	case StateUninitialized:
		e.state = StateActive
	case StateIdleSuspended:
		if ptr.Velocity >= e.tracker.IdleThreshold() {
			e.state = StateActive
		}
	}
	if e.state == StateActive && e.tracker.IdleTicks() > e.idleLimit {
		e.state = StateIdleSuspended
	}

	if e.state != StateActive {
		e.recordTick(ptr, false)
		e.perf.EndTick()
		e.report()
		return false
	}

	e.elapsed += dt

	e.perf.StartPhase(telemetry.PhaseSimulate)
	dst, src := e.fields.Write(), e.fields.Read()
	e.pool.run(dst.H, func(y0, y1 int) {
		e.simulator.StepRows(dst, src, ptr, e.elapsed, y0, y1)
	})
	e.fields.Swap()

	e.perf.StartPhase(telemetry.PhaseShade)
	field := e.fields.Read()
	e.pool.run(field.H, func(y0, y1 int) {
		e.shader.ShadeRows(e.pix, field, y0, y1)
	})

	e.perf.StartPhase(telemetry.PhaseSparks)
	e.sparks.Update(dt, ptr, e.elapsed)

	if e.uploader != nil {
		e.perf.StartPhase(telemetry.PhaseUpload)
		e.uploader(e.pix)
	}

	e.recordTick(ptr, true)
	e.perf.EndTick()
	e.report()
	return true
}

func (e *Effect) recordTick(ptr sim.PointerState, active bool) {
	e.collector.RecordTick(float64(ptr.Velocity), active, e.sparks.Count())

	window := float32(e.cfg.Telemetry.StatsWindow)
	if window <= 0 || e.clock-e.lastFlush < window {
		return
	}
	e.lastFlush = e.clock

	summary := e.fields.Read().Summary(e.shader.Floor())
	stats := e.collector.Flush(float64(e.clock),
		float64(summary.Mean), float64(summary.Max), float64(summary.Coverage))
	stats.LogStats()
	if e.onWindow != nil {
		e.onWindow(stats)
	}
}

func (e *Effect) report() {
	interval := int64(e.cfg.Telemetry.LogInterval)
	if interval <= 0 || e.tick%interval != 0 {
		return
	}
	stats := e.perf.Stats()
	stats.LogStats()
	if e.onPerf != nil {
		e.onPerf(stats)
	}
}

// RecordFrame forwards frame timing to the perf collector. Graphics-mode
// drivers call it once per rendered frame.
func (e *Effect) RecordFrame() {
	e.perf.RecordFrame()
}

// Pixels returns the current shaded frame, one RGBA value per field texel
// in row-major order. The slice is reused across ticks.
func (e *Effect) Pixels() []color.RGBA {
	return e.pix
}

// FieldSize returns the density field dimensions in texels.
func (e *Effect) FieldSize() (int, int) {
	return e.fields.Size()
}

// Field returns the current readable density field.
func (e *Effect) Field() *sim.DensityField {
	return e.fields.Read()
}

// Sparks exposes the spark layer for rendering.
func (e *Effect) Sparks() *SparkSystem {
	return e.sparks
}

// State returns the current lifecycle state.
func (e *Effect) State() State {
	return e.state
}

// Ticks returns the number of ticks driven so far, including suspended ones.
func (e *Effect) Ticks() int64 {
	return e.tick
}

// SetHovered records whether the pointer is over the viewport. The flag is
// informational for the driver; it does not gate the simulation, which
// suspends on stillness alone.
func (e *Effect) SetHovered(h bool) {
	e.hovered = h
}

// Hovered reports the last hover flag.
func (e *Effect) Hovered() bool {
	return e.hovered
}

// Resize rebuilds the field and pixel buffers for a new viewport size.
// Must only be called between ticks. The trail restarts from an empty
// field; pointer history and elapsed time carry over.
func (e *Effect) Resize(viewportW, viewportH int) {
	fw, fh := fieldSize(viewportW, viewportH, e.cfg.Field.Downscale)
	e.fields.Resize(fw, fh)
	e.pix = make([]color.RGBA, fw*fh)
}

// FlushTelemetry flushes the in-progress telemetry window, for end-of-run
// output.
func (e *Effect) FlushTelemetry() telemetry.WindowStats {
	summary := e.fields.Read().Summary(e.shader.Floor())
	return e.collector.Flush(float64(e.clock),
		float64(summary.Mean), float64(summary.Max), float64(summary.Coverage))
}

// PerfStats returns aggregated performance stats over the rolling window.
func (e *Effect) PerfStats() telemetry.PerfStats {
	return e.perf.Stats()
}

// Close stops the worker pool. The effect must not be ticked afterwards.
func (e *Effect) Close() {
	e.pool.stop()
}
