package search

import (
	"time"

	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
)

// GraceDelay is how long a closing suggestion surface stays interactive so a
// pending click-selection can still register.
const GraceDelay = 200 * time.Millisecond

// State is the autocomplete state machine state
type State string

const (
	StateIdle       State = "idle"
	StateSuggesting State = "suggesting"
	StateResolved   State = "resolved"
	StateClosing    State = "closing"
)

// EventKind identifies an autocomplete event
type EventKind string

const (
	EventInput        EventKind = "input"
	EventFocus        EventKind = "focus"
	EventBlur         EventKind = "blur"
	EventSelect       EventKind = "select"
	EventGraceElapsed EventKind = "grace-elapsed"
)

// Event is one input to the reducer. Value carries the current field text for
// input/focus/blur; Selection carries the chosen entry for select.
type Event struct {
	Kind      EventKind
	Value     string
	Selection refdata.ClassificationCode
}

// Effects tells the subscribing view layer what to do after a transition.
// ScheduleClose asks the view to deliver a grace-elapsed event after
// GraceDelay.
type Effects struct {
	ShowSuggestions bool
	Suggestions     []Match
	HideSuggestions bool
	SetResolved     bool
	Resolved        refdata.ClassificationCode
	ClearResolved   bool
	FillDescription string
	ScheduleClose   bool
}

// Instance is the per-input autocomplete state machine. Each form row owns
// its own Instance; instances share only the immutable engine table.
type Instance struct {
	engine *Engine
	state  State
}

// NewInstance creates an autocomplete instance in the idle state
func NewInstance(engine *Engine) *Instance {
	return &Instance{engine: engine, state: StateIdle}
}

// State returns the current state
func (i *Instance) State() State {
	return i.state
}

// Reduce applies an event and returns the new state plus view effects. The
// transition function itself is pure with respect to the event and current
// state; the engine table is immutable.
func (i *Instance) Reduce(event Event) (State, Effects) {
	next, effects := i.reduce(event)
	i.state = next
	return next, effects
}

func (i *Instance) reduce(event Event) (State, Effects) {
	switch event.Kind {
	case EventInput, EventFocus:
		// Focus re-runs the search as if the value had just been typed,
		// so the same input always yields the same result.
		return i.reduceInput(event.Value)

	case EventSelect:
		// Selection bypasses the exact-match recheck
		return StateResolved, Effects{
			HideSuggestions: true,
			SetResolved:     true,
			Resolved:        event.Selection,
			FillDescription: event.Selection.Description,
		}

	case EventBlur:
		effects := Effects{ScheduleClose: true}
		if resolved, ok := i.engine.ResolveExact(event.Value); ok {
			effects.SetResolved = true
			effects.Resolved = resolved
			effects.FillDescription = resolved.Description
		} else {
			effects.ClearResolved = true
		}
		return StateClosing, effects

	case EventGraceElapsed:
		if i.state != StateClosing {
			return i.state, Effects{}
		}
		return StateIdle, Effects{HideSuggestions: true}

	default:
		return i.state, Effects{}
	}
}

func (i *Instance) reduceInput(value string) (State, Effects) {
	result := i.engine.Search(value)

	effects := Effects{}

	if resolved, ok := i.engine.ResolveExact(value); ok {
		effects.SetResolved = true
		effects.Resolved = resolved
		effects.FillDescription = resolved.Description
	} else {
		effects.ClearResolved = true
	}

	if !result.Active {
		effects.HideSuggestions = true
		if effects.SetResolved {
			return StateResolved, effects
		}
		return StateIdle, effects
	}

	effects.ShowSuggestions = true
	effects.Suggestions = result.Matches
	return StateSuggesting, effects
}
