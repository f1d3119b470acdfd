package main

import (
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/config"
	"github.com/pthm-cable/touchline/match"
	"github.com/pthm-cable/touchline/telemetry"
	"github.com/pthm-cable/touchline/vector"
)

// FitnessEvaluator runs headless matches and scores the resulting play.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0, // 10 simulated seconds per window
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Good parameters produce flowing matches: many completed actions, balanced
// possession, and a pass rate that stays steady across windows.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runMatch(cfg, s)
			quality := computeQuality(windows)
			results[idx] = seedResult{
				fitness: computeFitness(windows, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runMatch simulates one full match and returns its window stats.
func (fe *FitnessEvaluator) runMatch(cfg *config.Config, seed int64) []telemetry.WindowStats {
	engine := match.NewEngine(cfg, seed)
	defer engine.Close()

	if err := buildSides(engine, cfg); err != nil {
		return nil
	}

	collector := telemetry.NewCollector(fe.statsWindow, cfg.Derived.DT32)
	var windows []telemetry.WindowStats

	for i := int32(0); i < fe.maxTicks; i++ {
		start := time.Now()
		result, err := engine.Step()
		if err != nil {
			break
		}
		engine.Integrate()
		collector.RecordTick(result, owningTeam(engine.Ball().OwnerID), time.Since(start))

		if collector.WindowReady(engine.Tick()) {
			windows = append(windows, collector.EndWindow(engine.Tick()))
		}
	}
	return windows
}

// copyConfig returns a fresh config so evaluations never share mutable state.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness scores one match run (lower = better).
func computeFitness(windows []telemetry.WindowStats, quality float64) float64 {
	if len(windows) == 0 {
		return 0
	}
	var passes, shots int
	for _, w := range windows {
		passes += w.Passes
		shots += w.Shots
	}
	score := float64(passes) + 3*float64(shots)
	return -score * (1 + 0.2*quality)
}

// computeQuality rates how the match flowed, 0-1: balanced possession and a
// steady pass rate across windows.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) == 0 {
		return 0
	}

	var balance float64
	passRates := make([]float64, 0, len(windows))
	for _, w := range windows {
		balance += 1 - math.Abs(w.PossessionA-w.PossessionB)
		passRates = append(passRates, float64(w.Passes))
	}
	balance /= float64(len(windows))

	steadiness := 1 - cv(passRates)
	if steadiness < 0 {
		steadiness = 0
	}

	return clamp01(0.6*balance + 0.4*steadiness)
}

// cv returns the coefficient of variation (std / mean), 0 for a flat series.
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(values)-1)) / mean
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

const (
	teamLeft  uint32 = 100
	teamRight uint32 = 200

	leftBaseID  uint32 = 1
	rightBaseID uint32 = 101
)

// owningTeam maps a ball owner id to its team, 0 for a loose ball.
func owningTeam(ownerID uint32) uint32 {
	switch {
	case ownerID == 0:
		return 0
	case ownerID >= rightBaseID:
		return teamRight
	default:
		return teamLeft
	}
}

// buildSides fills both squads and hands the ball to a left-side forward.
func buildSides(e *match.Engine, cfg *config.Config) error {
	if err := buildSquad(e, cfg, teamLeft, components.SideLeft, leftBaseID); err != nil {
		return err
	}
	if err := buildSquad(e, cfg, teamRight, components.SideRight, rightBaseID); err != nil {
		return err
	}
	return e.GiveBall(leftBaseID + uint32(cfg.Squad.PlayersPerSide) - 1)
}

// buildSquad lays out one side back to front in a rough 4-4-2.
func buildSquad(e *match.Engine, cfg *config.Config, teamID uint32, side components.Side, baseID uint32) error {
	n := cfg.Squad.PlayersPerSide
	if n < 2 {
		n = 2
	}

	w := cfg.Derived.FieldW32
	h := cfg.Derived.FieldH32
	x := func(frac float32) float32 {
		if side == components.SideRight {
			return w * (1 - frac)
		}
		return w * frac
	}

	outfield := n - 1
	defenders := outfield * 4 / 10
	forwards := outfield * 2 / 10
	if forwards < 1 {
		forwards = 1
	}
	midfielders := outfield - defenders - forwards

	type line struct {
		role  components.Role
		count int
		depth float32
	}
	lines := []line{
		{components.RoleGoalkeeper, 1, 0.04},
		{components.RoleDefender, defenders, 0.2},
		{components.RoleMidfielder, midfielders, 0.38},
		{components.RoleForward, forwards, 0.45},
	}

	id := baseID
	for _, l := range lines {
		for i := 0; i < l.count; i++ {
			y := h * float32(i+1) / float32(l.count+1)
			err := e.AddPlayer(match.PlayerSetup{
				ID:       id,
				TeamID:   teamID,
				Side:     side,
				Role:     l.role,
				Position: vector.New(x(l.depth), y, 0),
				Skills: components.Skills{
					MaxSpeed:     8,
					Acceleration: 12,
					Physical:     60,
					Mental:       65,
					Technical:    70,
				},
			})
			if err != nil {
				return err
			}
			id++
		}
	}
	return nil
}
