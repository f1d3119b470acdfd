package club

import (
	"testing"

	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/config"
	"github.com/pthm-cable/touchline/match"
	"github.com/pthm-cable/touchline/vector"
)

func testSquad(t *testing.T) []Player {
	t.Helper()
	skills := components.Skills{MaxSpeed: 8, Acceleration: 12, Physical: 60, Mental: 65, Technical: 70}
	roles := []components.Role{
		components.RoleGoalkeeper,
		components.RoleDefender,
		components.RoleMidfielder,
		components.RoleForward,
		components.RoleGoalkeeper,
		components.RoleDefender,
		components.RoleMidfielder,
		components.RoleForward,
	}
	squad := make([]Player, 0, len(roles))
	for i, role := range roles {
		squad = append(squad, Player{
			Setup: match.PlayerSetup{
				ID:       uint32(i + 1),
				Role:     role,
				Position: vector.New(float32(10+i*10), 34, 0),
				Skills:   skills,
			},
			WeekSalary: 1000,
		})
	}
	return squad
}

func testTeam(t *testing.T) *Team {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	team := NewTeam(1, "First Team", cfg, testSquad(t))
	team.SessionTicks = 30
	return team
}

func TestTeamSimulate(t *testing.T) {
	team := testTeam(t)

	res, err := team.Simulate(SimContext{Day: 3, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if res.Ticks != 30 {
		t.Errorf("ticks = %d, want 30", res.Ticks)
	}
	if res.Transitions == 0 {
		t.Error("a session should produce at least one state transition")
	}
}

func TestTeamSimulateTooSmall(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	team := NewTeam(1, "Thin Squad", cfg, nil)
	if _, err := team.Simulate(SimContext{}); err == nil {
		t.Error("simulating an empty squad should fail")
	}
}

func TestWeekSalary(t *testing.T) {
	team := testTeam(t)
	if got := team.WeekSalary(); got != 8000 {
		t.Errorf("week salary = %d, want 8000", got)
	}
}

func TestClubWeeklySalaryOnBoundaryOnly(t *testing.T) {
	team := testTeam(t)
	team.SessionTicks = 5
	c := NewClub(1, "Touchline FC", NewFinances(100000), Reputation{}, []*Team{team})

	// Mid-week: nothing queued, nothing paid.
	res, err := c.Simulate(SimContext{Day: 3, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Finance.Paid != 0 {
		t.Errorf("mid-week paid = %d, want 0", res.Finance.Paid)
	}
	if c.Finances.PendingSalary() != 0 {
		t.Errorf("mid-week pending = %d, want 0", c.Finances.PendingSalary())
	}

	// Week boundary queues salaries; they settle on the next pass.
	if _, err := c.Simulate(SimContext{Day: 7, Seed: 1}); err != nil {
		t.Fatal(err)
	}
	if c.Finances.PendingSalary() != 8000 {
		t.Errorf("pending after boundary = %d, want 8000", c.Finances.PendingSalary())
	}

	res, err = c.Simulate(SimContext{Day: 8, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Finance.Paid != 8000 {
		t.Errorf("paid = %d, want 8000", res.Finance.Paid)
	}
	if c.Finances.Balance != 92000 {
		t.Errorf("balance = %d, want 92000", c.Finances.Balance)
	}
}

func TestBoardConfidenceClamped(t *testing.T) {
	b := NewBoard()
	attacking := []*TeamResult{{Shots: 10, Tackles: 1}}
	for i := 0; i < 100; i++ {
		b.Simulate(attacking)
	}
	if b.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", b.Confidence)
	}

	defending := []*TeamResult{{Shots: 0, Tackles: 5}}
	for i := 0; i < 200; i++ {
		b.Simulate(defending)
	}
	if b.Confidence != 0 {
		t.Errorf("confidence = %v, want clamped to 0", b.Confidence)
	}
}

func TestAcademyGraduates(t *testing.T) {
	a := NewAcademy(10)
	graduated := false
	for i := 0; i < 200 && !graduated; i++ {
		graduated = a.Simulate().Graduated
	}
	if !graduated {
		t.Fatal("academy never graduated an intake")
	}
	if a.Level != 11 {
		t.Errorf("level = %d, want 11", a.Level)
	}
	if a.Progress != 0 {
		t.Errorf("progress = %v, want reset to 0", a.Progress)
	}
}
