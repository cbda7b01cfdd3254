package dsl

import (
	"fmt"

	"github.com/Semihazah/skein/pkg/program"
)

// NodeBuilder appends instructions to one node. All methods return the
// builder for chaining.
type NodeBuilder struct {
	node    program.Node
	builder *Builder
	lineSeq int
}

func (nb *NodeBuilder) emit(op program.OpCode, operands ...program.Operand) *NodeBuilder {
	nb.node.Instructions = append(nb.node.Instructions, program.Instruction{
		Op:       op,
		Operands: operands,
	})
	return nb
}

// Say registers text in the string table under a generated id and emits the
// line. Pending pushed values become substitutions when n > 0; use Line for
// explicit ids.
func (nb *NodeBuilder) Say(text string) *NodeBuilder {
	id := fmt.Sprintf("line:%s.%d", nb.node.Name, nb.lineSeq)
	nb.lineSeq++
	nb.builder.record(id, text)
	return nb.emit(program.OpRunLine, program.StringOperand(id))
}

// Line emits a line by explicit string-table id.
func (nb *NodeBuilder) Line(id string) *NodeBuilder {
	return nb.emit(program.OpRunLine, program.StringOperand(id))
}

// LineWith emits a line that consumes n pushed values as substitutions.
func (nb *NodeBuilder) LineWith(id string, n int) *NodeBuilder {
	return nb.emit(program.OpRunLine, program.StringOperand(id), program.FloatOperand(float32(n)))
}

// Command emits a raw command for the host registry.
func (nb *NodeBuilder) Command(raw string) *NodeBuilder {
	return nb.emit(program.OpRunCommand, program.StringOperand(raw))
}

// Option accumulates a choice whose text lives under id and which jumps to
// the destination node when selected.
func (nb *NodeBuilder) Option(id, destination string) *NodeBuilder {
	return nb.emit(program.OpAddOption, program.StringOperand(id), program.StringOperand(destination))
}

// Offer registers text under a generated id and accumulates it as a choice.
func (nb *NodeBuilder) Offer(text, destination string) *NodeBuilder {
	id := fmt.Sprintf("line:%s.%d", nb.node.Name, nb.lineSeq)
	nb.lineSeq++
	nb.builder.record(id, text)
	return nb.Option(id, destination)
}

// Choices presents the accumulated options, waits for a selection, and
// transfers control to the selected destination node.
func (nb *NodeBuilder) Choices() *NodeBuilder {
	nb.emit(program.OpShowOptions)
	return nb.emit(program.OpRunNode)
}

// PushString pushes a string value.
func (nb *NodeBuilder) PushString(s string) *NodeBuilder {
	return nb.emit(program.OpPushString, program.StringOperand(s))
}

// PushFloat pushes a numeric value.
func (nb *NodeBuilder) PushFloat(f float32) *NodeBuilder {
	return nb.emit(program.OpPushFloat, program.FloatOperand(f))
}

// PushBool pushes a boolean value.
func (nb *NodeBuilder) PushBool(v bool) *NodeBuilder {
	return nb.emit(program.OpPushBool, program.BoolOperand(v))
}

// PushVariable pushes the named variable's value.
func (nb *NodeBuilder) PushVariable(name string) *NodeBuilder {
	return nb.emit(program.OpPushVariable, program.StringOperand(name))
}

// StoreVariable stores the top of stack into the named variable.
func (nb *NodeBuilder) StoreVariable(name string) *NodeBuilder {
	return nb.emit(program.OpStoreVariable, program.StringOperand(name))
}

// Pop discards the top of stack.
func (nb *NodeBuilder) Pop() *NodeBuilder {
	return nb.emit(program.OpPop)
}

// Call pushes the argument count and invokes the named library function.
func (nb *NodeBuilder) Call(name string, argc int) *NodeBuilder {
	nb.PushFloat(float32(argc))
	return nb.emit(program.OpCallFunc, program.StringOperand(name))
}

// Label marks the next instruction as a jump target.
func (nb *NodeBuilder) Label(name string) *NodeBuilder {
	nb.node.Labels[name] = len(nb.node.Instructions)
	return nb
}

// JumpTo jumps unconditionally to a label in this node.
func (nb *NodeBuilder) JumpTo(label string) *NodeBuilder {
	return nb.emit(program.OpJumpTo, program.StringOperand(label))
}

// JumpIfFalse jumps to the label when the top of stack is falsy. The value
// stays on the stack.
func (nb *NodeBuilder) JumpIfFalse(label string) *NodeBuilder {
	return nb.emit(program.OpJumpIfFalse, program.StringOperand(label))
}

// Visit pushes the node name and transfers control to it.
func (nb *NodeBuilder) Visit(node string) *NodeBuilder {
	nb.PushString(node)
	return nb.emit(program.OpRunNode)
}

// Stop ends the session.
func (nb *NodeBuilder) Stop() *NodeBuilder {
	return nb.emit(program.OpStop)
}
