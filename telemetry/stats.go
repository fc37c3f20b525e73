package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Pointer motion during window
	VelocityMean float64 `csv:"velocity_mean"`
	VelocityStd  float64 `csv:"velocity_std"`
	VelocityP50  float64 `csv:"velocity_p50"`
	VelocityP90  float64 `csv:"velocity_p90"`

	// Activity during window
	ActiveTicks    int     `csv:"active_ticks"`
	SuspendedTicks int     `csv:"suspended_ticks"`
	ActiveFraction float64 `csv:"active_fraction"`

	// Field state at window end
	FieldMean     float64 `csv:"field_mean"`
	FieldMax      float64 `csv:"field_max"`
	FieldCoverage float64 `csv:"field_coverage"`

	// Spark population at window end
	SparkCount int `csv:"sparks"`
}

// Collector accumulates per-tick observations and flushes them into
// WindowStats at a fixed interval.
type Collector struct {
	windowStart    int64
	tick           int64
	velocities     []float64
	activeTicks    int
	suspendedTicks int
	lastSparks     int
}

// NewCollector creates a collector with an empty window.
func NewCollector() *Collector {
	return &Collector{
		velocities: make([]float64, 0, 256),
	}
}

// RecordTick records one tick's observations.
func (c *Collector) RecordTick(velocity float64, active bool, sparks int) {
	c.tick++
	c.velocities = append(c.velocities, velocity)
	if active {
		c.activeTicks++
	} else {
		c.suspendedTicks++
	}
	c.lastSparks = sparks
}

// Tick returns the number of ticks recorded since creation.
func (c *Collector) Tick() int64 {
	return c.tick
}

// Flush aggregates the current window, resets the accumulators, and
// returns the stats. Field measurements are sampled by the caller at
// flush time since they describe state, not events.
func (c *Collector) Flush(simTime, fieldMean, fieldMax, coverage float64) WindowStats {
	s := WindowStats{
		WindowEndTick:  c.tick,
		SimTimeSec:     simTime,
		ActiveTicks:    c.activeTicks,
		SuspendedTicks: c.suspendedTicks,
		FieldMean:      fieldMean,
		FieldMax:       fieldMax,
		FieldCoverage:  coverage,
		SparkCount:     c.lastSparks,
	}

	total := c.activeTicks + c.suspendedTicks
	if total > 0 {
		s.ActiveFraction = float64(c.activeTicks) / float64(total)
	}

	if len(c.velocities) > 0 {
		s.VelocityMean = stat.Mean(c.velocities, nil)
		s.VelocityStd = stat.StdDev(c.velocities, nil)

		sorted := make([]float64, len(c.velocities))
		copy(sorted, c.velocities)
		sort.Float64s(sorted)
		s.VelocityP50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
		s.VelocityP90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	}

	c.windowStart = c.tick
	c.velocities = c.velocities[:0]
	c.activeTicks = 0
	c.suspendedTicks = 0

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("velocity_mean", s.VelocityMean),
		slog.Float64("velocity_std", s.VelocityStd),
		slog.Float64("velocity_p50", s.VelocityP50),
		slog.Float64("velocity_p90", s.VelocityP90),
		slog.Int("active_ticks", s.ActiveTicks),
		slog.Int("suspended_ticks", s.SuspendedTicks),
		slog.Float64("active_fraction", s.ActiveFraction),
		slog.Float64("field_mean", s.FieldMean),
		slog.Float64("field_max", s.FieldMax),
		slog.Float64("field_coverage", s.FieldCoverage),
		slog.Int("sparks", s.SparkCount),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"velocity_mean", s.VelocityMean,
		"velocity_std", s.VelocityStd,
		"velocity_p50", s.VelocityP50,
		"velocity_p90", s.VelocityP90,
		"active_ticks", s.ActiveTicks,
		"suspended_ticks", s.SuspendedTicks,
		"active_fraction", s.ActiveFraction,
		"field_mean", s.FieldMean,
		"field_max", s.FieldMax,
		"field_coverage", s.FieldCoverage,
		"sparks", s.SparkCount,
	)
}
