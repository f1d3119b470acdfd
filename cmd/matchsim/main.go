// Package main runs a headless match simulation and writes telemetry CSVs.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/config"
	"github.com/pthm-cable/touchline/match"
	"github.com/pthm-cable/touchline/telemetry"
	"github.com/pthm-cable/touchline/vector"
)

const (
	teamLeft  uint32 = 100
	teamRight uint32 = 200

	leftBaseID  uint32 = 1
	rightBaseID uint32 = 101
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 54000, "Stop after N ticks")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	engine := match.NewEngine(cfg, rngSeed)
	defer engine.Close()

	if err := buildSquad(engine, cfg, teamLeft, components.SideLeft, leftBaseID); err != nil {
		slog.Error("building left squad", "error", err)
		os.Exit(1)
	}
	if err := buildSquad(engine, cfg, teamRight, components.SideRight, rightBaseID); err != nil {
		slog.Error("building right squad", "error", err)
		os.Exit(1)
	}

	// Kickoff to the left side's first forward.
	kickoffID := leftBaseID + uint32(cfg.Squad.PlayersPerSide) - 1
	if err := engine.GiveBall(kickoffID); err != nil {
		slog.Error("kickoff", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("creating output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("writing config snapshot", "error", err)
		os.Exit(1)
	}

	collector := telemetry.NewCollector(statsWindowSec, cfg.Derived.DT32)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	engine.SetPhaseTimer(perf)

	slog.Info("starting match simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"players_per_side", cfg.Squad.PlayersPerSide,
		"stats_window", statsWindowSec,
	)

	for i := 0; i < *maxTicks; i++ {
		perf.StartTick()

		result, err := engine.Step()
		if err != nil {
			slog.Error("step failed", "tick", i, "error", err)
			os.Exit(1)
		}

		perf.StartPhase(telemetry.PhaseIntegrate)
		engine.Integrate()

		perf.StartPhase(telemetry.PhaseTelemetry)
		duration := perf.EndTick()
		collector.RecordTick(result, owningTeam(engine.Ball().OwnerID), duration)

		tick := engine.Tick()
		if collector.WindowReady(tick) {
			stats := collector.EndWindow(tick)
			if *logStats {
				stats.Log()
			}
			if err := output.WriteWindow(stats); err != nil {
				slog.Error("writing window stats", "error", err)
				os.Exit(1)
			}
			if err := output.WritePerf(perf.Record(tick)); err != nil {
				slog.Error("writing perf stats", "error", err)
				os.Exit(1)
			}
		}
	}

	slog.Info("match finished",
		"ticks", engine.Tick(),
		"sim_time", float64(engine.Tick())*cfg.Physics.DT,
		"avg_tick_ms", float64(perf.AvgTick())/float64(time.Millisecond),
	)
}

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

// buildSquad lays out one side back to front: keeper, then defenders,
// midfielders, and forwards split roughly 4-4-2.
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
			// Spread the line evenly across the pitch height.
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
