// Package telemetry provides match statistics windows, phase timing, and CSV
// output for headless runs.
package telemetry

import (
	"time"

	"github.com/pthm-cable/touchline/match"
)

// Collector accumulates per-tick engine output within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for the current window
	passes      int
	shots       int
	tackles     int
	claims      int
	clearances  int
	transitions int

	// Possession ticks by team id
	possession map[uint32]int

	// Tick wall-clock durations in milliseconds, for gonum aggregation
	tickMs []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		possession:          make(map[uint32]int),
	}
}

// RecordTick folds one tick's engine output into the current window.
// owningTeam is the team id in possession at tick end, 0 when the ball is
// loose.
func (c *Collector) RecordTick(result *match.TickResult, owningTeam uint32, duration time.Duration) {
	for _, ev := range result.Events {
		switch ev.Kind {
		case match.EventRequestPass:
			c.passes++
		case match.EventShoot:
			c.shots++
		case match.EventTackle:
			c.tackles++
		case match.EventClaimBall:
			c.claims++
		case match.EventClearBall:
			c.clearances++
		}
	}
	c.transitions += len(result.Transitions)
	if owningTeam != 0 {
		c.possession[owningTeam]++
	}
	c.tickMs = append(c.tickMs, float64(duration)/float64(time.Millisecond))
}

// WindowReady reports whether the current window has elapsed at tick.
func (c *Collector) WindowReady(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// EndWindow closes the current window, returning its stats and resetting the
// counters for the next one.
func (c *Collector) EndWindow(tick int32) WindowStats {
	stats := newWindowStats(c, tick)

	c.windowStartTick = tick
	c.passes = 0
	c.shots = 0
	c.tackles = 0
	c.claims = 0
	c.clearances = 0
	c.transitions = 0
	c.possession = make(map[uint32]int)
	c.tickMs = c.tickMs[:0]

	return stats
}
