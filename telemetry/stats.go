package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated match statistics for one time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Events during window
	Passes      int `csv:"passes"`
	Shots       int `csv:"shots"`
	Tackles     int `csv:"tackles"`
	Claims      int `csv:"claims"`
	Clearances  int `csv:"clearances"`
	Transitions int `csv:"transitions"`

	// Possession split over the window, 0-1. Teams keyed by ascending id;
	// loose-ball ticks belong to neither.
	PossessionA float64 `csv:"possession_a"`
	PossessionB float64 `csv:"possession_b"`

	// Tick wall-clock timing
	TickMsMean float64 `csv:"tick_ms_mean"`
	TickMsStd  float64 `csv:"tick_ms_std"`
	TickMsP90  float64 `csv:"tick_ms_p90"`
}

// newWindowStats aggregates the collector's counters for the closing window.
func newWindowStats(c *Collector, tick int32) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * float64(c.dt),
		Passes:          c.passes,
		Shots:           c.shots,
		Tackles:         c.tackles,
		Claims:          c.claims,
		Clearances:      c.clearances,
		Transitions:     c.transitions,
	}

	windowTicks := tick - c.windowStartTick
	if windowTicks > 0 && len(c.possession) > 0 {
		teams := make([]uint32, 0, len(c.possession))
		for id := range c.possession {
			teams = append(teams, id)
		}
		sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })

		stats.PossessionA = float64(c.possession[teams[0]]) / float64(windowTicks)
		if len(teams) > 1 {
			stats.PossessionB = float64(c.possession[teams[1]]) / float64(windowTicks)
		}
	}

	if len(c.tickMs) > 0 {
		stats.TickMsMean = stat.Mean(c.tickMs, nil)
		stats.TickMsStd = stat.StdDev(c.tickMs, nil)

		sorted := make([]float64, len(c.tickMs))
		copy(sorted, c.tickMs)
		sort.Float64s(sorted)
		stats.TickMsP90 = Percentile(sorted, 0.9)
	}

	return stats
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Log emits the window via slog.
func (s WindowStats) Log() {
	slog.Info("window stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"passes", s.Passes,
		"shots", s.Shots,
		"tackles", s.Tackles,
		"clearances", s.Clearances,
		"transitions", s.Transitions,
		"possession_a", s.PossessionA,
		"possession_b", s.PossessionB,
		"tick_ms_mean", s.TickMsMean,
	)
}
