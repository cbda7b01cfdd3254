package domain

// Phase is the coarse mode of the session runner.
type Phase string

const (
	// PhaseIdle means no program is bound. The runner only leaves Idle
	// when the admission gate promotes a ready request.
	PhaseIdle Phase = "idle"

	// PhaseRunning means exactly one session is bound and progressing.
	PhaseRunning Phase = "running"
)

// Substate refines PhaseRunning with what the session is presenting.
type Substate string

const (
	// SubstateNone is the substate outside PhaseRunning.
	SubstateNone Substate = ""

	// SubstateAwaitingStep means the session is bound but has not yet
	// surfaced content, or the previous content has been consumed.
	SubstateAwaitingStep Substate = "awaiting_step"

	// SubstateDeliveringLine means a resolved line of dialogue is current.
	SubstateDeliveringLine Substate = "delivering_line"

	// SubstatePresentingChoices means a resolved choice list is current
	// and the interpreter is waiting for a selection.
	SubstatePresentingChoices Substate = "presenting_choices"
)

// Status is a point-in-time snapshot of the runner, safe for the host to
// retain. Consumers re-read it after every change notification; the
// notification itself carries no payload.
type Status struct {
	Phase    Phase
	Substate Substate

	// Script is the locator of the bound session, empty while Idle.
	Script string

	// Line is the resolved text while Substate == SubstateDeliveringLine.
	Line string

	// Choices are the resolved option texts while
	// Substate == SubstatePresentingChoices.
	Choices []string
}

// Idle reports whether no session is bound.
func (s Status) Idle() bool { return s.Phase == PhaseIdle }
