package domain

// SuspendKind categorizes why the interpreter paused after one advance.
type SuspendKind int

const (
	// SuspendLine means a line of dialogue is ready for delivery.
	SuspendLine SuspendKind = iota

	// SuspendOptions means a choice list is ready; the interpreter will
	// not progress until an option is selected.
	SuspendOptions

	// SuspendCommand means the script requested a host command.
	SuspendCommand

	// SuspendNodeChange means execution crossed a node boundary.
	// Informational only.
	SuspendNodeChange

	// SuspendComplete means the program finished.
	SuspendComplete
)

func (k SuspendKind) String() string {
	switch k {
	case SuspendLine:
		return "line"
	case SuspendOptions:
		return "options"
	case SuspendCommand:
		return "command"
	case SuspendNodeChange:
		return "node_change"
	case SuspendComplete:
		return "complete"
	}
	return "unknown"
}

// LineRef identifies a line in the bound string table, together with the
// ordered substitution values the interpreter accumulated for it.
type LineRef struct {
	ID            string
	Substitutions []string
}

// OptionRef is one entry of a pending choice list.
type OptionRef struct {
	Line LineRef

	// Destination is the node the interpreter will run if this option is
	// selected. The runtime treats it as opaque.
	Destination string
}

// Suspend is the value surfaced by a single interpreter advance. Exactly one
// payload field is meaningful, selected by Kind.
type Suspend struct {
	Kind SuspendKind

	// Line is set for SuspendLine.
	Line LineRef

	// Options is set for SuspendOptions.
	Options []OptionRef

	// Command is the raw command text for SuspendCommand.
	Command string

	// Node is the node name for SuspendNodeChange.
	Node string
}
