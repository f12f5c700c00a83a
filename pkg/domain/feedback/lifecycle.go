package feedback

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Feature lifecycle states. A feature enters the backlog on first intake,
// gets scored by the prioritization pipeline, is planned onto a quarter, and
// leaves the funnel as shipped or rejected before being archived.
const (
	StateBacklog  = "backlog"
	StateScored   = "scored"
	StatePlanned  = "planned"
	StateShipped  = "shipped"
	StateRejected = "rejected"
	StateArchived = "archived"
)

// Lifecycle events.
const (
	EventScore   = "score"
	EventPlan    = "plan"
	EventShip    = "ship"
	EventReject  = "reject"
	EventArchive = "archive"
	EventReopen  = "reopen"
)

// LifecycleContext carries the feature identity through the state machine.
type LifecycleContext struct {
	Feature string
}

// Lifecycle enforces the valid transitions of a feature through the funnel.
type Lifecycle struct {
	interpreter *statekit.Interpreter[LifecycleContext]
}

// NewLifecycle builds a lifecycle machine starting at initialState.
func NewLifecycle(initialState string, feature string) (*Lifecycle, error) {
	builder := statekit.NewMachine[LifecycleContext]("feature-lifecycle").
		WithInitial(statekit.StateID(initialState)).
		WithContext(LifecycleContext{Feature: feature})

	builder.State(StateBacklog).
		On(EventScore).Target(StateScored).
		On(EventReject).Target(StateRejected).
		Done()

	builder.State(StateScored).
		On(EventPlan).Target(StatePlanned).
		On(EventReject).Target(StateRejected).
		Done()

	builder.State(StatePlanned).
		On(EventShip).Target(StateShipped).
		On(EventReject).Target(StateRejected).
		On(EventReopen).Target(StateScored).
		Done()

	builder.State(StateShipped).
		On(EventArchive).Target(StateArchived).
		Done()

	builder.State(StateRejected).
		On(EventArchive).Target(StateArchived).
		On(EventReopen).Target(StateBacklog).
		Done()

	builder.State(StateArchived).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build lifecycle machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &Lifecycle{interpreter: interpreter}, nil
}

// Transition applies an event. It returns an error when the event is not
// legal in the current state.
func (l *Lifecycle) Transition(event string) error {
	before := l.Current()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := l.Current()

	if before == after {
		return fmt.Errorf("event %q is not allowed while the feature is %q", event, before)
	}
	return nil
}

// Current returns the current lifecycle state.
func (l *Lifecycle) Current() string {
	return string(l.interpreter.State().Value)
}

// ValidLifecycleState reports whether s names a lifecycle state.
func ValidLifecycleState(s string) bool {
	switch s {
	case StateBacklog, StateScored, StatePlanned, StateShipped, StateRejected, StateArchived:
		return true
	default:
		return false
	}
}
