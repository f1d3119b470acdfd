// Package match implements the tick-based football match engine: per-player
// behavioral state machines, steering-driven movement, and deterministic
// per-tick result aggregation.
package match

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/touchline/components"
	"github.com/pthm-cable/touchline/config"
	"github.com/pthm-cable/touchline/vector"
)

// Engine advances a match one tick at a time. Player storage lives in an ECS
// world; behavioral state and the ball are engine-owned.
type Engine struct {
	world *ecs.World
	cfg   *config.Config
	seed  int64

	playerMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Skills,
		components.PlayerInfo,
	]
	playerFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Skills,
		components.PlayerInfo,
	]

	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	infoMap *ecs.Map1[components.PlayerInfo]

	entities map[uint32]ecs.Entity

	// Behavioral state per player, keyed by id. Transitions commit at tick
	// end and take effect on the following tick.
	states map[uint32]PlayerState

	ball Ball

	goalLeft  vector.Vector
	goalRight vector.Vector

	tick    int32
	elapsed float32

	parallel *parallelState
	timer    PhaseTimer
}

// PhaseTimer receives phase boundaries during Step for profiling.
type PhaseTimer interface {
	StartPhase(name string)
}

// PlayerSetup describes one player added to a match.
type PlayerSetup struct {
	ID       uint32
	TeamID   uint32
	Side     components.Side
	Role     components.Role
	Position vector.Vector
	Skills   components.Skills
}

// NewEngine creates a match engine for the given config and rng seed.
// The same config, players, and seed reproduce the same match.
func NewEngine(cfg *config.Config, seed int64) *Engine {
	world := ecs.NewWorld()

	e := &Engine{
		world: world,
		cfg:   cfg,
		seed:  seed,
		playerMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Skills,
			components.PlayerInfo,
		](world),
		playerFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Skills,
			components.PlayerInfo,
		](world),
		posMap:   ecs.NewMap1[components.Position](world),
		velMap:   ecs.NewMap1[components.Velocity](world),
		infoMap:  ecs.NewMap1[components.PlayerInfo](world),
		entities: make(map[uint32]ecs.Entity),
		states:   make(map[uint32]PlayerState),
	}

	e.goalLeft = vector.New(0, cfg.Derived.FieldH32/2, 0)
	e.goalRight = vector.New(cfg.Derived.FieldW32, cfg.Derived.FieldH32/2, 0)
	e.ball.Position = vector.New(cfg.Derived.FieldW32/2, cfg.Derived.FieldH32/2, 0)
	e.parallel = newParallelState()

	return e
}

// AddPlayer registers a player entity in its role's default state.
func (e *Engine) AddPlayer(setup PlayerSetup) error {
	if setup.ID == 0 {
		return fmt.Errorf("player id 0 is reserved for \"no player\"")
	}
	if _, exists := e.entities[setup.ID]; exists {
		return fmt.Errorf("player %d already added", setup.ID)
	}

	pos := components.PositionFrom(setup.Position)
	vel := components.Velocity{}
	skills := setup.Skills
	info := components.PlayerInfo{
		ID:     setup.ID,
		TeamID: setup.TeamID,
		Side:   setup.Side,
		Role:   setup.Role,
	}

	entity := e.playerMapper.NewEntity(&pos, &vel, &skills, &info)
	e.entities[setup.ID] = entity
	e.states[setup.ID] = DefaultState(setup.Role)
	return nil
}

// GiveBall assigns possession to a player, e.g. for kickoff.
func (e *Engine) GiveBall(playerID uint32) error {
	entity, ok := e.entities[playerID]
	if !ok {
		return fmt.Errorf("unknown player %d", playerID)
	}
	e.clearPossession()
	info := e.infoMap.Get(entity)
	info.HasBall = true
	e.ball.OwnerID = playerID
	e.ball.ReceiverID = 0
	e.ball.Velocity = vector.Zero
	e.ball.Position = e.posMap.Get(entity).Vec()
	return nil
}

// Ball returns the current ball state.
func (e *Engine) Ball() Ball {
	return e.ball
}

// Tick returns the number of completed ticks.
func (e *Engine) Tick() int32 {
	return e.tick
}

// State returns a player's active behavioral state.
func (e *Engine) State(playerID uint32) (PlayerState, bool) {
	s, ok := e.states[playerID]
	return s, ok
}

// SetPhaseTimer attaches a profiling hook notified at each Step phase.
func (e *Engine) SetPhaseTimer(t PhaseTimer) {
	e.timer = t
}

func (e *Engine) startPhase(name string) {
	if e.timer != nil {
		e.timer.StartPhase(name)
	}
}

// Step advances the match by one tick: build the immutable snapshot, evaluate
// every player against it (fast path first, slow path as fallback), then
// commit velocities, transitions, and events in ascending player-id order.
// A tick either fully completes or the step fails as a whole.
func (e *Engine) Step() (*TickResult, error) {
	e.startPhase("snapshot")
	ctx := e.buildContext()
	if len(ctx.Players) == 0 {
		return nil, fmt.Errorf("step: no players in match")
	}

	// Phase B: evaluate. Results land in pending slots indexed like the
	// snapshot, so scheduling order cannot leak into the outcome.
	e.startPhase("evaluate")
	e.evaluateAll(ctx)

	// Phase C: commit single-threaded.
	e.startPhase("commit")
	result := e.commit(ctx)

	e.tick++
	e.elapsed += e.cfg.Derived.DT32
	return result, nil
}

// buildContext constructs the tick snapshot. Phase A, single-threaded.
func (e *Engine) buildContext() *TickContext {
	ctx := &TickContext{
		Players:     make([]PlayerSnapshot, 0, len(e.entities)),
		FieldWidth:  e.cfg.Derived.FieldW32,
		FieldHeight: e.cfg.Derived.FieldH32,
		GoalLeft:    e.goalLeft,
		GoalRight:   e.goalRight,
		Time:        e.elapsed,
		cfg:         e.cfg,
		Ball: BallSnapshot{
			Position: e.ball.Position,
			Velocity: e.ball.Velocity,
			OwnerID:  e.ball.OwnerID,
		},
	}

	query := e.playerFilter.Query()
	for query.Next() {
		pos, vel, skills, info := query.Get()
		ctx.Players = append(ctx.Players, PlayerSnapshot{
			ID:       info.ID,
			TeamID:   info.TeamID,
			Side:     info.Side,
			Role:     info.Role,
			HasBall:  info.HasBall,
			Position: pos.Vec(),
			Velocity: vel.Vec(),
			Skills:   *skills,
			State:    e.states[info.ID],
		})
	}

	// Canonical order: ascending player id, independent of world layout.
	sort.Slice(ctx.Players, func(i, j int) bool {
		return ctx.Players[i].ID < ctx.Players[j].ID
	})
	ctx.index = make(map[uint32]int, len(ctx.Players))
	for i := range ctx.Players {
		ctx.index[ctx.Players[i].ID] = i
	}
	return ctx
}

// evaluatePlayer runs one player's state machine against the snapshot:
// fast path first, slow path only when no fast rule fired.
func (e *Engine) evaluatePlayer(ctx *TickContext, i int) pendingEval {
	p := &ctx.Players[i]
	h := handlerFor(p.State)

	// Wander and the slow path draw randomness from a per-player stream so
	// the outcome is identical no matter which worker runs the evaluation.
	rng := rand.New(rand.NewSource(e.playerTickSeed(p.ID)))

	res := h.tryFast(ctx, p)
	if res == nil {
		res = h.processSlow(ctx, p, rng)
	}

	pending := pendingEval{res: res}
	if res == nil || res.Velocity == nil {
		pending.corr = h.velocity(ctx, p, rng)
		pending.useCorr = true
	}
	return pending
}

// playerTickSeed derives a deterministic per-player, per-tick rng seed.
func (e *Engine) playerTickSeed(playerID uint32) int64 {
	h := uint64(e.seed)
	h ^= (uint64(e.tick) + 1) * 0x9E3779B97F4A7C15
	h ^= uint64(playerID) * 0xC2B2AE3D27D4EB4F
	return int64(h)
}

// commit applies pending results in ascending player-id order: velocities
// integrated and clamped to skill limits, at most one state transition per
// player (effective next tick), events merged, then the serialized
// ball/possession update.
func (e *Engine) commit(ctx *TickContext) *TickResult {
	dt := e.cfg.Derived.DT32
	result := &TickResult{Tick: e.tick}

	for i := range ctx.Players {
		p := &ctx.Players[i]
		pending := &e.parallel.pending[i]

		entity, ok := e.entities[p.ID]
		if !ok {
			continue
		}

		var newVel vector.Vector
		if pending.useCorr {
			// Steering output is a correction term: clamp it to what the
			// player can accelerate this tick, then blend into the stored
			// velocity.
			corr := clampLength(pending.corr, p.Skills.Acceleration*dt)
			newVel = clampLength(p.Velocity.Add(corr), p.Skills.MaxSpeed)
		} else {
			newVel = clampLength(*pending.res.Velocity, p.Skills.MaxSpeed)
		}

		vel := e.velMap.Get(entity)
		*vel = components.VelocityFrom(newVel)
		result.Velocities = append(result.Velocities, VelocityUpdate{PlayerID: p.ID, Velocity: newVel})

		if pending.res != nil {
			if pending.res.Next != nil {
				next := *pending.res.Next
				e.states[p.ID] = next
				result.Transitions = append(result.Transitions, StateTransition{
					PlayerID: p.ID,
					From:     p.State,
					To:       next,
				})
			}
			result.Events = append(result.Events, pending.res.Events...)
		}
	}

	e.applyEvents(ctx, result.Events)
	return result
}

// applyEvents is the single serialized phase allowed to touch the ball and
// possession flags.
func (e *Engine) applyEvents(ctx *TickContext, events []PlayerEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case EventRequestPass:
			e.applyPass(ev.PlayerID, ev.TargetID)
		case EventShoot:
			e.applyShot(ev.PlayerID)
		case EventTackle:
			e.applyTackle(ev.PlayerID, ev.TargetID)
		case EventClaimBall:
			e.applyClaim(ev.PlayerID)
		case EventClearBall:
			e.applyClearance(ev.PlayerID)
		}
	}
}

func (e *Engine) applyPass(passerID, receiverID uint32) {
	if e.ball.OwnerID != passerID {
		return
	}
	passer, okP := e.entities[passerID]
	receiver, okR := e.entities[receiverID]
	if !okP || !okR {
		return
	}

	e.infoMap.Get(passer).HasBall = false
	e.ball.OwnerID = 0
	e.ball.ReceiverID = receiverID

	target := e.posMap.Get(receiver).Vec()
	distance := e.ball.Position.DistanceTo(target)
	speed := distance * passSpeedScale
	if speed > passSpeedMax {
		speed = passSpeedMax
	}
	e.ball.Velocity = e.ball.Position.DirectionTo(target).Scale(speed)
}

func (e *Engine) applyShot(shooterID uint32) {
	if e.ball.OwnerID != shooterID {
		return
	}
	shooter, ok := e.entities[shooterID]
	if !ok {
		return
	}

	info := e.infoMap.Get(shooter)
	info.HasBall = false
	e.ball.OwnerID = 0
	e.ball.ReceiverID = 0

	goal := e.goalRight
	if info.Side == components.SideRight {
		goal = e.goalLeft
	}
	e.ball.Velocity = e.ball.Position.DirectionTo(goal).Scale(shotSpeed)
}

func (e *Engine) applyTackle(tacklerID, targetID uint32) {
	if e.ball.OwnerID != targetID {
		return
	}
	tackler, okT := e.entities[tacklerID]
	target, okV := e.entities[targetID]
	if !okT || !okV {
		return
	}
	// Carrier may have moved since evaluation; the tackle lands only if
	// still in range at commit.
	tacklerPos := e.posMap.Get(tackler).Vec()
	targetPos := e.posMap.Get(target).Vec()
	if tacklerPos.DistanceTo(targetPos) > float32(e.cfg.Decision.TackleDistance)*1.5 {
		return
	}

	e.infoMap.Get(target).HasBall = false
	e.infoMap.Get(tackler).HasBall = true
	e.ball.OwnerID = tacklerID
	e.ball.ReceiverID = 0
	e.ball.Velocity = vector.Zero
	e.ball.Position = tacklerPos
}

func (e *Engine) applyClaim(claimerID uint32) {
	if e.ball.OwnerID != 0 {
		return
	}
	claimer, ok := e.entities[claimerID]
	if !ok {
		return
	}
	pos := e.posMap.Get(claimer).Vec()
	if pos.DistanceTo(e.ball.Position) > float32(e.cfg.Decision.TackleDistance)*1.5 {
		return
	}

	e.infoMap.Get(claimer).HasBall = true
	e.ball.OwnerID = claimerID
	e.ball.ReceiverID = 0
	e.ball.Velocity = vector.Zero
	e.ball.Position = pos
}

func (e *Engine) applyClearance(clearerID uint32) {
	if e.ball.OwnerID != clearerID {
		return
	}
	clearer, ok := e.entities[clearerID]
	if !ok {
		return
	}

	info := e.infoMap.Get(clearer)
	info.HasBall = false
	e.ball.OwnerID = 0
	e.ball.ReceiverID = 0

	goal := e.goalRight
	if info.Side == components.SideRight {
		goal = e.goalLeft
	}
	e.ball.Velocity = e.ball.Position.DirectionTo(goal).Scale(clearanceSpeed)
}

// Integrate advances positions from committed velocities. It belongs to the
// surrounding match layer, not the decision core: callers run it after Step.
func (e *Engine) Integrate() {
	dt := e.cfg.Derived.DT32

	query := e.playerFilter.Query()
	for query.Next() {
		pos, vel, _, _ := query.Get()
		pos.X = clampRange(pos.X+vel.X*dt, 0, e.cfg.Derived.FieldW32)
		pos.Y = clampRange(pos.Y+vel.Y*dt, 0, e.cfg.Derived.FieldH32)
	}

	if e.ball.OwnerID != 0 {
		// The ball travels with its carrier, slightly ahead of the feet.
		if entity, ok := e.entities[e.ball.OwnerID]; ok {
			carrierPos := e.posMap.Get(entity).Vec()
			carrierVel := e.velMap.Get(entity).Vec()
			e.ball.Position = carrierPos.Add(carrierVel.Normalize().Scale(carryLead))
			e.ball.Velocity = carrierVel
		}
		return
	}

	e.ball.Position = e.ball.Position.Add(e.ball.Velocity.Scale(dt))
	e.ball.Position.X = clampRange(e.ball.Position.X, 0, e.cfg.Derived.FieldW32)
	e.ball.Position.Y = clampRange(e.ball.Position.Y, 0, e.cfg.Derived.FieldH32)
	drag := 1 - ballDrag*dt
	if drag < 0 {
		drag = 0
	}
	e.ball.Velocity = e.ball.Velocity.Scale(drag)

	if e.ball.ReceiverID != 0 {
		if entity, ok := e.entities[e.ball.ReceiverID]; ok {
			receiverPos := e.posMap.Get(entity).Vec()
			if receiverPos.DistanceTo(e.ball.Position) < receiveRadius {
				e.infoMap.Get(entity).HasBall = true
				e.ball.OwnerID = e.ball.ReceiverID
				e.ball.ReceiverID = 0
				e.ball.Velocity = vector.Zero
				e.ball.Position = receiverPos
			}
		} else {
			e.ball.ReceiverID = 0
		}
	}
}

// Close shuts down the engine's worker pool.
func (e *Engine) Close() {
	e.parallel.stopWorkers()
}

// clearPossession drops the has-ball flag on every player.
func (e *Engine) clearPossession() {
	query := e.playerFilter.Query()
	for query.Next() {
		_, _, _, info := query.Get()
		info.HasBall = false
	}
}

// clampLength limits v to the given length.
func clampLength(v vector.Vector, max float32) vector.Vector {
	if max <= 0 {
		return vector.Zero
	}
	l := v.Length()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// clampRange clamps x to [lo, hi].
func clampRange(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
