// Package club is the aggregate layer around the match engine: finances,
// board confidence, academy progress, and the teams whose sessions drive
// match simulations. It accumulates between matches and never enters the
// per-tick loop.
package club

import (
	"fmt"
	"log/slog"
)

// SimContext carries the simulated calendar position and base seed for one
// club simulation step.
type SimContext struct {
	Day  int32
	Seed int64
}

// IsWeekStart reports whether the context falls on a week boundary.
func (ctx SimContext) IsWeekStart() bool {
	return ctx.Day%7 == 0
}

// Mood tracks the overall atmosphere around the club, 0-1.
type Mood struct {
	Level float64
}

// DefaultMood is a neutral starting mood.
func DefaultMood() Mood {
	return Mood{Level: 0.5}
}

// Reputation is the club's standing, 0-1000.
type Reputation struct {
	World    uint16
	National uint16
}

// Club owns the teams and the surrounding off-pitch state.
type Club struct {
	ID   uint32
	Name string

	Mood       Mood
	Board      Board
	Finances   Finances
	Reputation Reputation
	Academy    Academy

	Teams []*Team
}

// NewClub creates a club around its teams with a fresh board and academy.
func NewClub(id uint32, name string, finances Finances, reputation Reputation, teams []*Team) *Club {
	return &Club{
		ID:         id,
		Name:       name,
		Mood:       DefaultMood(),
		Board:      NewBoard(),
		Finances:   finances,
		Reputation: reputation,
		Academy:    NewAcademy(10),
		Teams:      teams,
	}
}

// Result aggregates one simulation step across the club.
type Result struct {
	Finance FinanceResult
	Teams   []*TeamResult
	Board   BoardResult
	Academy AcademyResult
}

// Simulate advances every team and the off-pitch state by one day. Weekly
// salaries are queued on week boundaries and settle on the next finance pass.
func (c *Club) Simulate(ctx SimContext) (*Result, error) {
	teamResults := make([]*TeamResult, 0, len(c.Teams))
	for _, team := range c.Teams {
		res, err := team.Simulate(ctx)
		if err != nil {
			return nil, fmt.Errorf("simulating team %s: %w", team.Name, err)
		}
		teamResults = append(teamResults, res)
	}

	result := &Result{
		Finance: c.Finances.Simulate(),
		Teams:   teamResults,
		Board:   c.Board.Simulate(teamResults),
		Academy: c.Academy.Simulate(),
	}

	if ctx.IsWeekStart() {
		for _, team := range c.Teams {
			c.Finances.PushSalary(team.WeekSalary())
		}
		slog.Debug("queued weekly salaries",
			"club", c.Name,
			"day", ctx.Day,
			"pending", c.Finances.PendingSalary())
	}

	return result, nil
}
