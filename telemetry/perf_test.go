package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(10)

	p.StartTick()
	p.StartPhase(PhaseSnapshot)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseEvaluate)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseCommit)
	total := p.EndTick()

	if total <= 0 {
		t.Fatal("tick duration should be positive")
	}
	if p.Avg(PhaseSnapshot) <= 0 {
		t.Error("snapshot phase should have recorded time")
	}
	if p.Avg(PhaseEvaluate) <= 0 {
		t.Error("evaluate phase should have recorded time")
	}
	if p.AvgTick() < p.Avg(PhaseSnapshot) {
		t.Error("tick average should cover its phases")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	p := NewPerfCollector(3)

	for i := 0; i < 5; i++ {
		p.StartTick()
		p.StartPhase(PhaseEvaluate)
		p.EndTick()
	}

	if p.sampleCount != 3 {
		t.Errorf("sample count = %d, want window size 3", p.sampleCount)
	}

	rec := p.Record(5)
	if rec.Tick != 5 {
		t.Errorf("record tick = %d, want 5", rec.Tick)
	}
	if rec.TickMs < 0 {
		t.Errorf("tick ms = %v, want non-negative", rec.TickMs)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)

	if p.AvgTick() != 0 {
		t.Error("empty collector should average zero")
	}
	if p.Avg(PhaseCommit) != 0 {
		t.Error("empty collector should average zero per phase")
	}
}
