package domain

import "context"

// SessionEvent describes a session lifecycle boundary.
type SessionEvent struct {
	Locator   string
	StartNode string
}

// LineEvent carries a delivered line.
type LineEvent struct {
	Locator string
	LineID  string
	Text    string
}

// ChoicesEvent carries a presented choice list.
type ChoicesEvent struct {
	Locator string
	Texts   []string
}

// CommandEvent carries a dispatched command.
type CommandEvent struct {
	Locator string
	Name    string
	Args    []string
	Handled bool
}

// RequestFailedEvent reports a request dropped at admission because one of
// its assets failed to load.
type RequestFailedEvent struct {
	Request Request
	Err     error
}

// SessionErrorEvent reports a running session aborted by a content-integrity
// violation (missing line id, substitution arity) or an interpreter fault.
type SessionErrorEvent struct {
	Locator string
	Err     error
}

// Hooks are optional observability callbacks invoked synchronously from the
// tick that produced the event. Nil members are skipped. Hook bodies must not
// re-enter the runtime's tick.
type Hooks struct {
	OnSessionStart  func(context.Context, *SessionEvent)
	OnSessionEnd    func(context.Context, *SessionEvent)
	OnSessionError  func(context.Context, *SessionErrorEvent)
	OnLine          func(context.Context, *LineEvent)
	OnChoices       func(context.Context, *ChoicesEvent)
	OnCommand       func(context.Context, *CommandEvent)
	OnRequestFailed func(context.Context, *RequestFailedEvent)
}
