// Package vm provides the default ports.Interpreter: a small stack machine
// executing compiled dialogue programs. Each Advance runs instructions until
// a suspend point surfaces (line, options, command, node boundary, or
// completion); pure stack operations execute inline.
package vm

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Semihazah/skein/pkg/adapters/memory"
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/ports"
	"github.com/Semihazah/skein/pkg/program"
)

// ErrStopped is returned by Advance after the program completed.
var ErrStopped = errors.New("program has completed")

// ErrWaiting is returned by Advance while an option selection is pending.
var ErrWaiting = errors.New("waiting on option selection")

// maxOpsPerAdvance bounds a single Advance so a mis-compiled jump loop
// cannot hang the tick thread.
const maxOpsPerAdvance = 100_000

// VM is a stack interpreter for compiled dialogue programs. Not safe for
// concurrent use; the runtime drives it from the tick thread only.
type VM struct {
	vars   ports.VariableStorage
	funcs  ports.FunctionLibrary
	logger *slog.Logger

	prog    *program.Program
	node    *program.Node
	pc      int
	stack   []any
	options []domain.OptionRef
	pending []string // destinations of the presented options
	waiting bool
	done    bool
}

// Option configures a VM.
type Option func(*VM)

// WithVariableStorage injects the variable backend (default: in-memory map).
func WithVariableStorage(vs ports.VariableStorage) Option {
	return func(v *VM) { v.vars = vs }
}

// WithFunctions injects the host function library used by CallFunc.
func WithFunctions(lib ports.FunctionLibrary) Option {
	return func(v *VM) { v.funcs = lib }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *VM) { v.logger = logger }
}

// New creates a VM with no program bound.
func New(opts ...Option) *VM {
	v := &VM{}
	for _, opt := range opts {
		opt(v)
	}
	if v.vars == nil {
		v.vars = memory.NewVariableStorage()
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	return v
}

// SetProgram implements ports.Interpreter. Execution resets to the
// program's implicit default entry point.
func (v *VM) SetProgram(p *program.Program) error {
	if p == nil || len(p.Nodes) == 0 {
		return fmt.Errorf("program has no nodes")
	}
	entry := p.DefaultEntry()
	v.prog = p
	v.node = p.Node(entry)
	v.pc = 0
	v.stack = v.stack[:0]
	v.options = nil
	v.pending = nil
	v.waiting = false
	v.done = false
	return nil
}

// SetNode implements ports.Interpreter.
func (v *VM) SetNode(name string) bool {
	n := v.prog.Node(name)
	if n == nil {
		return false
	}
	v.node = n
	v.pc = 0
	return true
}

// Waiting implements ports.Interpreter.
func (v *VM) Waiting() bool { return v.waiting }

// SelectOption implements ports.Interpreter. The selected option's
// destination lands on top of the stack, where the compiled script consumes
// it (typically via RunNode or Jump).
func (v *VM) SelectOption(index int) error {
	if !v.waiting {
		return fmt.Errorf("no options are pending")
	}
	if index < 0 || index >= len(v.pending) {
		return fmt.Errorf("option index %d out of range [0,%d)", index, len(v.pending))
	}
	v.push(v.pending[index])
	v.pending = nil
	v.waiting = false
	return nil
}

// Advance implements ports.Interpreter: it executes instructions until the
// next suspend point and returns the reason.
func (v *VM) Advance() (domain.Suspend, error) {
	if v.done {
		return domain.Suspend{}, ErrStopped
	}
	if v.waiting {
		return domain.Suspend{}, ErrWaiting
	}
	if v.node == nil {
		return domain.Suspend{}, fmt.Errorf("no program bound")
	}

	for ops := 0; ops < maxOpsPerAdvance; ops++ {
		if v.pc >= len(v.node.Instructions) {
			// Falling off the end of a node completes the dialogue.
			v.done = true
			return domain.Suspend{Kind: domain.SuspendComplete}, nil
		}
		inst := v.node.Instructions[v.pc]
		v.pc++

		sus, suspended, err := v.exec(inst)
		if err != nil {
			return domain.Suspend{}, fmt.Errorf("node %q pc %d (%s): %w", v.node.Name, v.pc-1, inst.Op, err)
		}
		if suspended {
			return sus, nil
		}
	}
	return domain.Suspend{}, fmt.Errorf("node %q: exceeded %d operations in one advance", v.node.Name, maxOpsPerAdvance)
}

func (v *VM) exec(inst program.Instruction) (domain.Suspend, bool, error) {
	switch inst.Op {
	case program.OpJumpTo:
		label, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		return domain.Suspend{}, false, v.jump(label)

	case program.OpJump:
		top, err := v.peek()
		if err != nil {
			return domain.Suspend{}, false, err
		}
		label, ok := top.(string)
		if !ok {
			return domain.Suspend{}, false, fmt.Errorf("jump target on stack is %T, want string", top)
		}
		return domain.Suspend{}, false, v.jump(label)

	case program.OpRunLine:
		id, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		subs, err := v.popSubstitutions(inst)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		return domain.Suspend{
			Kind: domain.SuspendLine,
			Line: domain.LineRef{ID: id, Substitutions: subs},
		}, true, nil

	case program.OpRunCommand:
		text, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		return domain.Suspend{Kind: domain.SuspendCommand, Command: text}, true, nil

	case program.OpAddOption:
		id, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		dest, err := stringOperand(inst, 1)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		v.options = append(v.options, domain.OptionRef{
			Line:        domain.LineRef{ID: id},
			Destination: dest,
		})
		return domain.Suspend{}, false, nil

	case program.OpShowOptions:
		if len(v.options) == 0 {
			return domain.Suspend{}, false, fmt.Errorf("no options accumulated")
		}
		opts := v.options
		v.options = nil
		v.pending = make([]string, len(opts))
		for i, o := range opts {
			v.pending[i] = o.Destination
		}
		v.waiting = true
		return domain.Suspend{Kind: domain.SuspendOptions, Options: opts}, true, nil

	case program.OpPushString:
		s, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		v.push(s)
		return domain.Suspend{}, false, nil

	case program.OpPushFloat:
		if len(inst.Operands) < 1 {
			return domain.Suspend{}, false, fmt.Errorf("missing operand")
		}
		v.push(inst.Operands[0].Float)
		return domain.Suspend{}, false, nil

	case program.OpPushBool:
		if len(inst.Operands) < 1 {
			return domain.Suspend{}, false, fmt.Errorf("missing operand")
		}
		v.push(inst.Operands[0].Bool)
		return domain.Suspend{}, false, nil

	case program.OpPushNull:
		v.push(nil)
		return domain.Suspend{}, false, nil

	case program.OpJumpIfFalse:
		label, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		top, err := v.peek()
		if err != nil {
			return domain.Suspend{}, false, err
		}
		if !truthy(top) {
			return domain.Suspend{}, false, v.jump(label)
		}
		return domain.Suspend{}, false, nil

	case program.OpPop:
		_, err := v.pop()
		return domain.Suspend{}, false, err

	case program.OpCallFunc:
		name, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		return domain.Suspend{}, false, v.callFunc(name)

	case program.OpPushVariable:
		name, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		value, _ := v.vars.GetValue(name)
		v.push(value)
		return domain.Suspend{}, false, nil

	case program.OpStoreVariable:
		name, err := stringOperand(inst, 0)
		if err != nil {
			return domain.Suspend{}, false, err
		}
		top, err := v.peek()
		if err != nil {
			return domain.Suspend{}, false, err
		}
		v.vars.SetValue(name, top)
		return domain.Suspend{}, false, nil

	case program.OpStop:
		v.done = true
		return domain.Suspend{Kind: domain.SuspendComplete}, true, nil

	case program.OpRunNode:
		top, err := v.pop()
		if err != nil {
			return domain.Suspend{}, false, err
		}
		name, ok := top.(string)
		if !ok {
			return domain.Suspend{}, false, fmt.Errorf("node name on stack is %T, want string", top)
		}
		if !v.SetNode(name) {
			return domain.Suspend{}, false, fmt.Errorf("program has no node %q", name)
		}
		return domain.Suspend{Kind: domain.SuspendNodeChange, Node: name}, true, nil
	}
	return domain.Suspend{}, false, fmt.Errorf("unsupported opcode")
}

// callFunc pops the argument count pushed by the compiler, then that many
// arguments (restoring source order), calls the library, and pushes any
// result.
func (v *VM) callFunc(name string) error {
	if v.funcs == nil {
		return fmt.Errorf("no function library configured for %q", name)
	}
	countv, err := v.pop()
	if err != nil {
		return err
	}
	count, ok := countv.(float32)
	if !ok {
		return fmt.Errorf("argument count on stack is %T, want float", countv)
	}
	n := int(count)
	if n < 0 || n > len(v.stack) {
		return fmt.Errorf("argument count %d out of range", n)
	}
	args := make([]any, n)
	for i := n - 1; i >= 0; i-- {
		args[i], _ = v.pop()
	}
	result, err := v.funcs.Call(name, args)
	if err != nil {
		return fmt.Errorf("calling %q: %w", name, err)
	}
	if result != nil {
		v.push(result)
	}
	return nil
}

// stringOperand returns operand i of inst, which must carry a string.
func stringOperand(inst program.Instruction, i int) (string, error) {
	if i >= len(inst.Operands) {
		return "", fmt.Errorf("missing operand %d", i)
	}
	if inst.Operands[i].Kind != program.OperandString {
		return "", fmt.Errorf("operand %d is not a string", i)
	}
	return inst.Operands[i].String, nil
}

// popSubstitutions pops the substitution values for a RunLine that carries a
// count operand (opB). Values were pushed in order, so they pop in reverse.
func (v *VM) popSubstitutions(inst program.Instruction) ([]string, error) {
	if len(inst.Operands) < 2 {
		return nil, nil
	}
	if inst.Operands[1].Kind != program.OperandFloat {
		return nil, fmt.Errorf("substitution count operand is not a float")
	}
	n := int(inst.Operands[1].Float)
	if n < 0 || n > len(v.stack) {
		return nil, fmt.Errorf("substitution count %d out of range", n)
	}
	subs := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		top, err := v.pop()
		if err != nil {
			return nil, err
		}
		subs[i] = formatValue(top)
	}
	return subs, nil
}

func (v *VM) jump(label string) error {
	idx, ok := v.node.Labels[label]
	if !ok {
		return fmt.Errorf("node %q has no label %q", v.node.Name, label)
	}
	if idx < 0 || idx > len(v.node.Instructions) {
		return fmt.Errorf("label %q points outside node %q", label, v.node.Name)
	}
	v.pc = idx
	return nil
}

func (v *VM) push(value any) { v.stack = append(v.stack, value) }

func (v *VM) pop() (any, error) {
	if len(v.stack) == 0 {
		return nil, fmt.Errorf("stack underflow")
	}
	top := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	return top, nil
}

func (v *VM) peek() (any, error) {
	if len(v.stack) == 0 {
		return nil, fmt.Errorf("stack underflow")
	}
	return v.stack[len(v.stack)-1], nil
}

// truthy follows the bytecode contract: null, zero and false are false,
// everything else is true.
func truthy(value any) bool {
	switch t := value.(type) {
	case nil:
		return false
	case bool:
		return t
	case float32:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// formatValue renders a stack value for line substitution.
func formatValue(value any) string {
	switch t := value.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}
