package match

import (
	"testing"

	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/config"
	"github.com/pthm-cable/touchline/vector"
)

func newTestContext(t *testing.T, players []PlayerSnapshot, ball BallSnapshot) *TickContext {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	ctx := &TickContext{
		Players:     players,
		Ball:        ball,
		FieldWidth:  cfg.Derived.FieldW32,
		FieldHeight: cfg.Derived.FieldH32,
		GoalLeft:    vector.New(0, cfg.Derived.FieldH32/2, 0),
		GoalRight:   vector.New(cfg.Derived.FieldW32, cfg.Derived.FieldH32/2, 0),
		cfg:         cfg,
	}
	ctx.index = make(map[uint32]int, len(players))
	for i := range players {
		ctx.index[players[i].ID] = i
	}
	return ctx
}

func testForward(id uint32, pos vector.Vector, hasBall bool) PlayerSnapshot {
	return PlayerSnapshot{
		ID:       id,
		TeamID:   100,
		Side:     components.SideLeft,
		Role:     components.RoleForward,
		HasBall:  hasBall,
		Position: pos,
		Skills: components.Skills{
			MaxSpeed:     8,
			Acceleration: 10,
			Technical:    70,
			Mental:       70,
		},
		State: WithForward(ForwardHeadingUpPlay),
	}
}

func testOpponent(id uint32, pos vector.Vector) PlayerSnapshot {
	p := testForward(id, pos, false)
	p.TeamID = 200
	p.Side = components.SideRight
	return p
}

func TestHeadingUpPlayLostBall(t *testing.T) {
	carrier := testForward(1, vector.New(50, 34, 0), false)
	ctx := newTestContext(t, []PlayerSnapshot{carrier}, BallSnapshot{})

	res := forwardHeadingUpPlay{}.tryFast(ctx, &ctx.Players[0])
	if res == nil || res.Next == nil {
		t.Fatal("expected a transition")
	}
	if res.Next.Forward() != ForwardRunning {
		t.Errorf("next = %v, want running", res.Next)
	}
}

func TestHeadingUpPlayPressureBeatsEverything(t *testing.T) {
	carrier := testForward(1, vector.New(50, 34, 0), true)
	// Open teammate in range and in lane; the nearby opponent must still win.
	teammate := testForward(2, vector.New(59, 34, 0), false)
	presser := testOpponent(3, vector.New(52, 34, 0))

	ctx := newTestContext(t,
		[]PlayerSnapshot{carrier, teammate, presser},
		BallSnapshot{Position: vector.New(50.4, 34, 0), OwnerID: 1})

	res := forwardHeadingUpPlay{}.tryFast(ctx, &ctx.Players[0])
	if res == nil || res.Next == nil {
		t.Fatal("expected a transition")
	}
	if res.Next.Forward() != ForwardPassing {
		t.Errorf("next = %v, want passing", res.Next)
	}
	if len(res.Events) != 0 {
		t.Errorf("pressure transition should emit no events, got %v", res.Events)
	}
}

func TestHeadingUpPlayNoSupportDribbles(t *testing.T) {
	carrier := testForward(1, vector.New(50, 34, 0), true)
	// Teammate beyond support range, opponent beyond pressure range.
	farMate := testForward(2, vector.New(80, 34, 0), false)
	farOpp := testOpponent(3, vector.New(20, 10, 0))

	ctx := newTestContext(t,
		[]PlayerSnapshot{carrier, farMate, farOpp},
		BallSnapshot{Position: vector.New(50.4, 34, 0), OwnerID: 1})

	res := forwardHeadingUpPlay{}.tryFast(ctx, &ctx.Players[0])
	if res == nil || res.Next == nil {
		t.Fatal("expected a transition")
	}
	if res.Next.Forward() != ForwardDribbling {
		t.Errorf("next = %v, want dribbling", res.Next)
	}
}

func TestHeadingUpPlayPassesToBestCandidate(t *testing.T) {
	carrier := testForward(1, vector.New(50, 34, 0), true)
	// Both open and in lane; id 3 sits closer to goal so it scores higher.
	nearMate := testForward(2, vector.New(59, 34, 0), false)
	farMate := testForward(3, vector.New(64, 34, 0), false)
	farOpp := testOpponent(4, vector.New(20, 10, 0))

	ctx := newTestContext(t,
		[]PlayerSnapshot{carrier, nearMate, farMate, farOpp},
		BallSnapshot{Position: vector.New(50.4, 34, 0), OwnerID: 1})

	res := forwardHeadingUpPlay{}.tryFast(ctx, &ctx.Players[0])
	if res == nil || res.Next == nil {
		t.Fatal("expected a transition")
	}
	if res.Next.Forward() != ForwardRunning {
		t.Errorf("next = %v, want running", res.Next)
	}
	if len(res.Events) != 1 {
		t.Fatalf("events = %v, want one pass request", res.Events)
	}
	ev := res.Events[0]
	if ev.Kind != EventRequestPass || ev.PlayerID != 1 || ev.TargetID != 3 {
		t.Errorf("event = %+v, want pass request 1 -> 3", ev)
	}
}

func TestHeadingUpPlayAdvancesAtHalfAcceleration(t *testing.T) {
	carrier := testForward(1, vector.New(50, 34, 0), true)
	// Supported but out of the passing lane, so no candidate qualifies.
	wideMate := testForward(2, vector.New(50, 40, 0), false)
	farOpp := testOpponent(3, vector.New(20, 10, 0))

	ctx := newTestContext(t,
		[]PlayerSnapshot{carrier, wideMate, farOpp},
		BallSnapshot{Position: vector.New(50.4, 34, 0), OwnerID: 1})

	res := forwardHeadingUpPlay{}.tryFast(ctx, &ctx.Players[0])
	if res == nil {
		t.Fatal("expected a velocity result")
	}
	if res.Next != nil {
		t.Errorf("next = %v, want no transition", res.Next)
	}
	if res.Velocity == nil {
		t.Fatal("expected an absolute velocity")
	}
	want := vector.New(5, 0, 0) // unit direction to goal, half of acceleration 10
	if res.Velocity.Sub(want).Length() > 1e-4 {
		t.Errorf("velocity = %v, want %v", *res.Velocity, want)
	}
}

func TestRunningShootsInRange(t *testing.T) {
	carrier := testForward(1, vector.New(90, 34, 0), true)
	ctx := newTestContext(t, []PlayerSnapshot{carrier},
		BallSnapshot{Position: vector.New(90.4, 34, 0), OwnerID: 1})

	res := forwardRunning{}.tryFast(ctx, &ctx.Players[0])
	if res == nil || res.Next == nil {
		t.Fatal("expected a transition")
	}
	if res.Next.Forward() != ForwardShooting {
		t.Errorf("next = %v, want shooting", res.Next)
	}
}

func TestRunningWithoutBallNoFastRule(t *testing.T) {
	p := testForward(1, vector.New(50, 34, 0), false)
	ctx := newTestContext(t, []PlayerSnapshot{p}, BallSnapshot{})

	if res := (forwardRunning{}).tryFast(ctx, &ctx.Players[0]); res != nil {
		t.Errorf("fast path fired without possession: %+v", res)
	}
}

func TestBestPassCandidateRejectsMarkedTeammate(t *testing.T) {
	carrier := testForward(1, vector.New(50, 34, 0), true)
	mate := testForward(2, vector.New(59, 34, 0), false)
	// Marker sits on the candidate, inside the clearance radius.
	marker := testOpponent(3, vector.New(60, 34, 0))

	ctx := newTestContext(t,
		[]PlayerSnapshot{carrier, mate, marker},
		BallSnapshot{Position: vector.New(50.4, 34, 0), OwnerID: 1})

	if id := bestPassCandidate(ctx, &ctx.Players[0]); id != 0 {
		t.Errorf("candidate = %d, want none", id)
	}
}
