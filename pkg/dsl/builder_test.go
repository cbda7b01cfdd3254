package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/dsl"
	"github.com/Semihazah/skein/pkg/program"
	"github.com/Semihazah/skein/pkg/vm"
)

func TestBuilderAssemblesNodesAndTable(t *testing.T) {
	b := dsl.New("quest")
	b.Node("Start").
		Say("Hello there.").
		Offer("Onward", "End").
		Choices()
	b.Node("End").
		Say("Goodbye.").
		Stop()

	prog, table, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "quest", prog.Name)
	require.Len(t, prog.Nodes, 2)
	assert.Equal(t, "Start", prog.DefaultEntry())

	text, ok := table.Lookup("line:Start.0")
	require.True(t, ok)
	assert.Equal(t, "Hello there.", text)
	text, ok = table.Lookup("line:End.0")
	require.True(t, ok)
	assert.Equal(t, "Goodbye.", text)
}

func TestBuilderNodeIsIdempotent(t *testing.T) {
	b := dsl.New("s")
	first := b.Node("Start")
	again := b.Node("Start")
	assert.Same(t, first, again)
}

func TestBuilderEmptyScriptFails(t *testing.T) {
	_, _, err := dsl.New("empty").Build()
	require.Error(t, err)
}

func TestBuilderLabelPastEndFails(t *testing.T) {
	b := dsl.New("s")
	b.Node("Start").Say("hi").Label("dangling")
	_, _, err := b.Build()
	require.Error(t, err)
}

// The built script must actually run: conditional jump over a line, a
// choice list, and a node transfer.
func TestBuiltScriptRunsOnInterpreter(t *testing.T) {
	b := dsl.New("branching")
	b.Node("Start").
		PushBool(false).
		JumpIfFalse("skip").
		Say("Never delivered.").
		Label("skip").
		Pop().
		Offer("To the end", "End").
		Choices()
	b.Node("End").
		Say("Done.").
		Visit("Coda")
	b.Node("Coda").
		Say("Coda.").
		Stop()

	prog, _, err := b.Build()
	require.NoError(t, err)

	v := vm.New()
	require.NoError(t, v.SetProgram(prog))

	s, err := v.Advance()
	require.NoError(t, err)
	require.Equal(t, domain.SuspendOptions, s.Kind)
	require.NoError(t, v.SelectOption(0))

	s, err = v.Advance()
	require.NoError(t, err)
	require.Equal(t, domain.SuspendNodeChange, s.Kind)
	assert.Equal(t, "End", s.Node)

	s, err = v.Advance()
	require.NoError(t, err)
	require.Equal(t, domain.SuspendLine, s.Kind)
	assert.Equal(t, "line:End.0", s.Line.ID)

	s, err = v.Advance()
	require.NoError(t, err)
	require.Equal(t, domain.SuspendNodeChange, s.Kind)

	s, err = v.Advance()
	require.NoError(t, err)
	require.Equal(t, domain.SuspendLine, s.Kind)

	s, err = v.Advance()
	require.NoError(t, err)
	assert.Equal(t, domain.SuspendComplete, s.Kind)
}

func TestBuilderOperandShapes(t *testing.T) {
	b := dsl.New("s")
	b.Node("Start").
		PushString("Hero").
		LineWith("line:greet", 1).
		Command("give gold 10").
		Stop()

	prog, _, err := b.Build()
	require.NoError(t, err)

	insts := prog.Nodes["Start"].Instructions
	require.Len(t, insts, 4)
	assert.Equal(t, program.OpRunLine, insts[1].Op)
	require.Len(t, insts[1].Operands, 2)
	assert.Equal(t, float32(1), insts[1].Operands[1].Float)
}
