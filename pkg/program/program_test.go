package program_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Semihazah/skein/pkg/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	src := `{
		"name": "greeting",
		"nodes": {
			"Start": {
				"instructions": [
					{"op": "RunLine", "operands": [{"string": "line:hello"}]},
					{"op": "PushFloat", "operands": [{"float": 2}]},
					{"op": "PushBool", "operands": [{"bool": true}]},
					{"op": "Stop"}
				],
				"labels": {"end": 3},
				"tags": ["intro"]
			}
		}
	}`

	p, err := program.Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "greeting", p.Name)
	node := p.Node("Start")
	require.NotNil(t, node)
	assert.Equal(t, "Start", node.Name)
	require.Len(t, node.Instructions, 4)
	assert.Equal(t, program.OpRunLine, node.Instructions[0].Op)
	assert.Equal(t, "line:hello", node.Instructions[0].Operands[0].String)
	assert.Equal(t, float32(2), node.Instructions[1].Operands[0].Float)
	assert.Equal(t, true, node.Instructions[2].Operands[0].Bool)
	assert.Equal(t, 3, node.Labels["end"])
}

func TestDecode_UnknownOpcode(t *testing.T) {
	src := `{"name": "x", "nodes": {"Start": {"instructions": [{"op": "Explode"}]}}}`
	_, err := program.Decode(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Explode")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	p := &program.Program{
		Name: "rt",
		Nodes: map[string]*program.Node{
			"Start": {
				Name: "Start",
				Instructions: []program.Instruction{
					{Op: program.OpAddOption, Operands: []program.Operand{
						program.StringOperand("line:opt"),
						program.StringOperand("Next"),
					}},
					{Op: program.OpShowOptions},
				},
			},
			"Next": {Name: "Next", Instructions: []program.Instruction{{Op: program.OpStop}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, program.Encode(&buf, p))

	got, err := program.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDefaultEntry(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		want  string
	}{
		{"prefers Start", []string{"Zeta", "Start", "Alpha"}, "Start"},
		{"lexical fallback", []string{"Zeta", "Alpha"}, "Alpha"},
		{"empty", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &program.Program{Nodes: map[string]*program.Node{}}
			for _, n := range tc.nodes {
				p.Nodes[n] = &program.Node{Name: n}
			}
			assert.Equal(t, tc.want, p.DefaultEntry())
		})
	}
}
