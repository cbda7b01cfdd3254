package validator_test

import (
	"testing"

	"github.com/Semihazah/skein/internal/validator"
	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/program"
	"github.com/stretchr/testify/assert"
)

func TestCheck_Clean(t *testing.T) {
	prog := &program.Program{
		Name: "ok",
		Nodes: map[string]*program.Node{
			"Start": {
				Name: "Start",
				Instructions: []program.Instruction{
					{Op: program.OpRunLine, Operands: []program.Operand{program.StringOperand("line:a")}},
					{Op: program.OpJumpTo, Operands: []program.Operand{program.StringOperand("end")}},
					{Op: program.OpStop},
				},
				Labels: map[string]int{"end": 2},
			},
		},
	}
	table := lines.NewTable([]lines.Record{{ID: "line:a", Text: "A"}})

	issues := validator.Check(prog, table)
	assert.Empty(t, issues)
	assert.False(t, validator.HasErrors(issues))
}

func TestCheck_MissingLineID(t *testing.T) {
	prog := &program.Program{
		Name: "bad",
		Nodes: map[string]*program.Node{
			"Start": {
				Name: "Start",
				Instructions: []program.Instruction{
					{Op: program.OpRunLine, Operands: []program.Operand{program.StringOperand("line:ghost")}},
				},
			},
		},
	}

	issues := validator.Check(prog, lines.NewTable(nil))
	assert.True(t, validator.HasErrors(issues))
}

func TestCheck_BrokenLabel(t *testing.T) {
	prog := &program.Program{
		Name: "bad",
		Nodes: map[string]*program.Node{
			"Start": {
				Name: "Start",
				Instructions: []program.Instruction{
					{Op: program.OpJumpTo, Operands: []program.Operand{program.StringOperand("nowhere")}},
				},
			},
		},
	}

	issues := validator.Check(prog, lines.NewTable(nil))
	assert.True(t, validator.HasErrors(issues))
}

func TestCheck_DuplicateIDsWarn(t *testing.T) {
	prog := &program.Program{
		Name:  "dup",
		Nodes: map[string]*program.Node{"Start": {Name: "Start"}},
	}
	table := lines.NewTable([]lines.Record{
		{ID: "line:a", Text: "first"},
		{ID: "line:a", Text: "second"},
	})

	issues := validator.Check(prog, table)
	assert.Len(t, issues, 1)
	assert.Equal(t, validator.SeverityWarning, issues[0].Severity)
	assert.False(t, validator.HasErrors(issues))
}
