package club

import (
	"fmt"

	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/config"
	"github.com/pthm-cable/touchline/match"
)

// Player is one squad member: match setup plus contract terms.
type Player struct {
	Setup      match.PlayerSetup
	WeekSalary int64
}

// Team is a squad that can run training sessions on the match engine.
type Team struct {
	ID     uint32
	Name   string
	Squad  []Player
	Config *config.Config

	// Ticks per training session.
	SessionTicks int
}

// NewTeam creates a team around its squad.
func NewTeam(id uint32, name string, cfg *config.Config, squad []Player) *Team {
	return &Team{
		ID:           id,
		Name:         name,
		Squad:        squad,
		Config:       cfg,
		SessionTicks: 600,
	}
}

// WeekSalary sums the squad's weekly wages.
func (t *Team) WeekSalary() int64 {
	var total int64
	for _, p := range t.Squad {
		total += p.WeekSalary
	}
	return total
}

// TeamResult summarizes one simulated session.
type TeamResult struct {
	TeamID      uint32
	Ticks       int32
	Passes      int
	Shots       int
	Tackles     int
	Transitions int
}

// Simulate runs an intra-squad session: the squad splits into two sides on a
// fresh engine seeded from the context, and the tick results are summarized.
func (t *Team) Simulate(ctx SimContext) (*TeamResult, error) {
	if len(t.Squad) < 2 {
		return nil, fmt.Errorf("team %s: need at least two players, have %d", t.Name, len(t.Squad))
	}

	seed := ctx.Seed ^ int64(t.ID)<<32 ^ int64(ctx.Day)
	engine := match.NewEngine(t.Config, seed)
	defer engine.Close()

	half := len(t.Squad) / 2
	for i, p := range t.Squad {
		setup := p.Setup
		if i < half {
			setup.TeamID = 1
			setup.Side = components.SideLeft
		} else {
			setup.TeamID = 2
			setup.Side = components.SideRight
		}
		if err := engine.AddPlayer(setup); err != nil {
			return nil, fmt.Errorf("team %s: %w", t.Name, err)
		}
	}
	if err := engine.GiveBall(t.Squad[0].Setup.ID); err != nil {
		return nil, fmt.Errorf("team %s kickoff: %w", t.Name, err)
	}

	result := &TeamResult{TeamID: t.ID}
	for i := 0; i < t.SessionTicks; i++ {
		tick, err := engine.Step()
		if err != nil {
			return nil, fmt.Errorf("team %s tick %d: %w", t.Name, i, err)
		}
		engine.Integrate()

		for _, ev := range tick.Events {
			switch ev.Kind {
			case match.EventRequestPass:
				result.Passes++
			case match.EventShoot:
				result.Shots++
			case match.EventTackle:
				result.Tackles++
			}
		}
		result.Transitions += len(tick.Transitions)
		result.Ticks++
	}
	return result, nil
}
