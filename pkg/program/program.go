// Package program models compiled dialogue scripts as produced by the
// external compiler: a named set of nodes, each an ordered instruction list
// with a label jump table. The runtime core never inspects instructions;
// only interpreter adapters do.
package program

import "fmt"

// OpCode is the operation of a single instruction.
type OpCode int

const (
	// OpJumpTo jumps to a named label in the current node. opA: label name.
	OpJumpTo OpCode = iota
	// OpJump peeks a label name from the stack and jumps to it.
	OpJump
	// OpRunLine delivers a string id to the client. opA: string id.
	OpRunLine
	// OpRunCommand delivers a command to the client. opA: command text.
	OpRunCommand
	// OpAddOption adds an entry to the pending option list. opA: string id,
	// opB: destination node name.
	OpAddOption
	// OpShowOptions presents the accumulated options, then clears them. The
	// selected destination is on top of the stack when execution resumes.
	OpShowOptions
	// OpPushString pushes a string. opA: the string.
	OpPushString
	// OpPushFloat pushes a float. opA: the number.
	OpPushFloat
	// OpPushBool pushes a bool. opA: the bool.
	OpPushBool
	// OpPushNull pushes a null value.
	OpPushNull
	// OpJumpIfFalse jumps to a label unless the top of stack is truthy.
	// opA: label name.
	OpJumpIfFalse
	// OpPop discards the top of the stack.
	OpPop
	// OpCallFunc calls a host function; arguments are popped, the result
	// (if any) is pushed. opA: function name.
	OpCallFunc
	// OpPushVariable pushes the contents of a variable. opA: variable name.
	OpPushVariable
	// OpStoreVariable stores the top of the stack in a variable.
	// opA: variable name.
	OpStoreVariable
	// OpStop halts the program.
	OpStop
	// OpRunNode runs the node whose name is on top of the stack.
	OpRunNode
)

var opNames = [...]string{
	OpJumpTo:        "JumpTo",
	OpJump:          "Jump",
	OpRunLine:       "RunLine",
	OpRunCommand:    "RunCommand",
	OpAddOption:     "AddOption",
	OpShowOptions:   "ShowOptions",
	OpPushString:    "PushString",
	OpPushFloat:     "PushFloat",
	OpPushBool:      "PushBool",
	OpPushNull:      "PushNull",
	OpJumpIfFalse:   "JumpIfFalse",
	OpPop:           "Pop",
	OpCallFunc:      "CallFunc",
	OpPushVariable:  "PushVariable",
	OpStoreVariable: "StoreVariable",
	OpStop:          "Stop",
	OpRunNode:       "RunNode",
}

func (op OpCode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("OpCode(%d)", int(op))
}

// ParseOpCode maps an opcode name back to its value.
func ParseOpCode(name string) (OpCode, error) {
	for i, n := range opNames {
		if n == name {
			return OpCode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown opcode %q", name)
}

// OperandKind is the type tag of an Operand.
type OperandKind int

const (
	OperandString OperandKind = iota
	OperandBool
	OperandFloat
)

// Operand is one instruction operand, holding exactly one of a string, a
// bool, or a 32-bit float.
type Operand struct {
	Kind   OperandKind
	String string
	Bool   bool
	Float  float32
}

// StringOperand builds a string operand.
func StringOperand(s string) Operand { return Operand{Kind: OperandString, String: s} }

// BoolOperand builds a bool operand.
func BoolOperand(b bool) Operand { return Operand{Kind: OperandBool, Bool: b} }

// FloatOperand builds a float operand.
func FloatOperand(f float32) Operand { return Operand{Kind: OperandFloat, Float: f} }

// Value returns the operand payload as an untyped value.
func (o Operand) Value() any {
	switch o.Kind {
	case OperandBool:
		return o.Bool
	case OperandFloat:
		return o.Float
	default:
		return o.String
	}
}

// Instruction is a single operation plus its operands.
type Instruction struct {
	Op       OpCode
	Operands []Operand
}

// Node is a named, addressable unit of instructions.
type Node struct {
	Name string

	// Instructions in execution order.
	Instructions []Instruction

	// Labels maps label names to instruction indexes within this node.
	Labels map[string]int

	// Tags are free-form markers attached by the author.
	Tags []string

	// SourceTextID references the string-table entry holding the node's
	// original text, if the compiler kept it.
	SourceTextID string
}

// Program is a complete compiled script.
type Program struct {
	Name  string
	Nodes map[string]*Node
}

// Node returns the named node, or nil if absent.
func (p *Program) Node(name string) *Node {
	if p == nil {
		return nil
	}
	return p.Nodes[name]
}

// DefaultEntry returns the implicit entry node: the node named "Start" when
// present, otherwise the lexically-first node name (deterministic across
// runs). Returns "" for an empty program.
func (p *Program) DefaultEntry() string {
	if p == nil || len(p.Nodes) == 0 {
		return ""
	}
	if _, ok := p.Nodes["Start"]; ok {
		return "Start"
	}
	first := ""
	for name := range p.Nodes {
		if first == "" || name < first {
			first = name
		}
	}
	return first
}
