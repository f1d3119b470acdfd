package telemetry

import "time"

// Phase names for one engine step.
const (
	PhaseSnapshot  = "snapshot"
	PhaseEvaluate  = "evaluate"
	PhaseCommit    = "commit"
	PhaseIntegrate = "integrate"
	PhaseTelemetry = "telemetry"
)

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a performance collector averaging over windowSize
// ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 100
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
// It returns the tick's total duration.
func (p *PerfCollector) EndTick() time.Duration {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	duration := now.Sub(p.tickStart)
	p.samples[p.writeIndex] = PerfSample{
		TickDuration: duration,
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	return duration
}

// Avg returns the average duration of one phase over the window.
func (p *PerfCollector) Avg(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.samples[i].Phases[phase]
	}
	return sum / time.Duration(p.sampleCount)
}

// AvgTick returns the average total tick duration over the window.
func (p *PerfCollector) AvgTick() time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.samples[i].TickDuration
	}
	return sum / time.Duration(p.sampleCount)
}

// Record produces a CSV record of the current window averages.
func (p *PerfCollector) Record(tick int32) PerfRecord {
	toMs := func(d time.Duration) float64 {
		return float64(d) / float64(time.Millisecond)
	}
	return PerfRecord{
		Tick:        tick,
		TickMs:      toMs(p.AvgTick()),
		SnapshotMs:  toMs(p.Avg(PhaseSnapshot)),
		EvaluateMs:  toMs(p.Avg(PhaseEvaluate)),
		CommitMs:    toMs(p.Avg(PhaseCommit)),
		IntegrateMs: toMs(p.Avg(PhaseIntegrate)),
	}
}

// PerfRecord is one perf.csv row of window-averaged phase timings.
type PerfRecord struct {
	Tick        int32   `csv:"tick"`
	TickMs      float64 `csv:"tick_ms"`
	SnapshotMs  float64 `csv:"snapshot_ms"`
	EvaluateMs  float64 `csv:"evaluate_ms"`
	CommitMs    float64 `csv:"commit_ms"`
	IntegrateMs float64 `csv:"integrate_ms"`
}
