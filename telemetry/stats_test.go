package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/touchline/match"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10-tick windows

	result := &match.TickResult{
		Events: []match.PlayerEvent{
			match.NewRequestPassEvent(1, 2),
			match.NewShootEvent(3),
			match.NewTackleEvent(4, 5),
		},
		Transitions: []match.StateTransition{{PlayerID: 1}},
	}

	for tick := int32(1); tick <= 10; tick++ {
		if c.WindowReady(tick - 1) {
			t.Fatalf("window ready early at tick %d", tick-1)
		}
		c.RecordTick(result, 100, 2*time.Millisecond)
	}

	if !c.WindowReady(10) {
		t.Fatal("window should be ready at tick 10")
	}

	stats := c.EndWindow(10)

	if stats.Passes != 10 || stats.Shots != 10 || stats.Tackles != 10 {
		t.Errorf("event counts = %d/%d/%d, want 10/10/10", stats.Passes, stats.Shots, stats.Tackles)
	}
	if stats.Transitions != 10 {
		t.Errorf("transitions = %d, want 10", stats.Transitions)
	}
	if math.Abs(stats.PossessionA-1.0) > 0.001 {
		t.Errorf("possession A = %v, want 1.0", stats.PossessionA)
	}
	if stats.PossessionB != 0 {
		t.Errorf("possession B = %v, want 0", stats.PossessionB)
	}
	if math.Abs(stats.TickMsMean-2.0) > 0.001 {
		t.Errorf("tick ms mean = %v, want 2.0", stats.TickMsMean)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 0.001 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}
}

func TestCollectorResetsBetweenWindows(t *testing.T) {
	c := NewCollector(0.5, 0.1) // 5-tick windows

	result := &match.TickResult{
		Events: []match.PlayerEvent{match.NewShootEvent(1)},
	}
	for tick := int32(1); tick <= 5; tick++ {
		c.RecordTick(result, 100, time.Millisecond)
	}
	first := c.EndWindow(5)
	if first.Shots != 5 {
		t.Fatalf("first window shots = %d, want 5", first.Shots)
	}

	// Second window sees a quieter match split between two teams.
	empty := &match.TickResult{}
	for tick := int32(6); tick <= 10; tick++ {
		team := uint32(100)
		if tick > 8 {
			team = 200
		}
		c.RecordTick(empty, team, time.Millisecond)
	}
	second := c.EndWindow(10)

	if second.Shots != 0 {
		t.Errorf("second window shots = %d, want 0", second.Shots)
	}
	if second.WindowStartTick != 5 || second.WindowEndTick != 10 {
		t.Errorf("window bounds = %d..%d, want 5..10", second.WindowStartTick, second.WindowEndTick)
	}
	if math.Abs(second.PossessionA-0.6) > 0.001 {
		t.Errorf("possession A = %v, want 0.6", second.PossessionA)
	}
	if math.Abs(second.PossessionB-0.4) > 0.001 {
		t.Errorf("possession B = %v, want 0.4", second.PossessionB)
	}
}

func TestCollectorLooseBallPossession(t *testing.T) {
	c := NewCollector(0.5, 0.1)

	empty := &match.TickResult{}
	for tick := int32(1); tick <= 5; tick++ {
		c.RecordTick(empty, 0, time.Millisecond)
	}
	stats := c.EndWindow(5)

	if stats.PossessionA != 0 || stats.PossessionB != 0 {
		t.Errorf("loose ball should yield zero possession, got %v/%v", stats.PossessionA, stats.PossessionB)
	}
}
