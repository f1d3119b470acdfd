package match

import "github.com/pthm-cable/touchline/vector"

// StateChangeResult is produced by one state evaluation. Velocity, when set,
// replaces the player's stored velocity at commit (clamped to skill limits);
// Next, when set, becomes the active state on the following tick. At most one
// transition is applied per player per tick.
type StateChangeResult struct {
	Velocity *vector.Vector
	Next     *PlayerState
	Events   []PlayerEvent
}

// NewStateChangeResult creates an empty result.
func NewStateChangeResult() *StateChangeResult {
	return &StateChangeResult{}
}

// WithState creates a result that only transitions to next.
func WithState(next PlayerState) *StateChangeResult {
	return &StateChangeResult{Next: &next}
}

// SetVelocity sets the result velocity.
func (r *StateChangeResult) SetVelocity(v vector.Vector) *StateChangeResult {
	r.Velocity = &v
	return r
}

// SetNext sets the state transition.
func (r *StateChangeResult) SetNext(next PlayerState) *StateChangeResult {
	r.Next = &next
	return r
}

// AddEvent appends an emitted event.
func (r *StateChangeResult) AddEvent(ev PlayerEvent) *StateChangeResult {
	r.Events = append(r.Events, ev)
	return r
}

// VelocityUpdate is one player's committed velocity for the tick.
type VelocityUpdate struct {
	PlayerID uint32
	Velocity vector.Vector
}

// StateTransition records a state change applied at tick end.
type StateTransition struct {
	PlayerID uint32
	From     PlayerState
	To       PlayerState
}

// TickResult aggregates all per-player outcomes of one tick. Velocities,
// Transitions, and Events ascend by player id — the canonical, reproducible
// order regardless of how evaluations were scheduled.
type TickResult struct {
	Tick        int32
	Velocities  []VelocityUpdate
	Transitions []StateTransition
	Events      []PlayerEvent
}
