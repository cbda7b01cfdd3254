package ports

import (
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/program"
)

// Interpreter is the opaque bytecode executor the runtime drives. The core
// never inspects instructions; it only advances the interpreter one suspend
// point at a time and reacts to the reason returned.
//
// Implementations are not required to be safe for concurrent use. The
// runtime calls them only from its single tick thread.
type Interpreter interface {
	// SetProgram binds a compiled program and resets execution to the
	// program's implicit default entry point, clearing any prior session
	// state (stack, pending options, current node).
	SetProgram(p *program.Program) error

	// SetNode moves the entry point to the named node. It reports false,
	// without changing anything, when the bound program has no such node.
	SetNode(name string) bool

	// Advance executes until the next suspend point and returns the
	// reason. Calling Advance after a SuspendComplete, or while Waiting
	// reports true, is an error.
	Advance() (domain.Suspend, error)

	// Waiting reports whether the interpreter is blocked on an option
	// selection. While true, Advance must not be called; the host resolves
	// the pending choice out of band via SelectOption.
	Waiting() bool

	// SelectOption resolves a pending choice by index into the option list
	// surfaced by the last SuspendOptions. It fails when no choice is
	// pending or the index is out of range.
	SelectOption(index int) error
}
